// Package access provides the role and tenant scoped access-control
// collaborator. The memory core assumes every call it receives has already
// been authorized; GuardedAgent is the enforcement point in front of it,
// applying least-privilege policy: subjects reach only their own profile,
// clinicians only profiles inside their organization, and the triage queue is
// restricted to clinical roles.
package access
