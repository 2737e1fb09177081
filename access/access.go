package access

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/memtrail/agent"
	"github.com/hupe1980/memtrail/core"
)

// Role is the closed set of requester roles.
type Role string

const (
	// RolePatient may only access their own profile.
	RolePatient Role = "patient"
	// RoleClinician may access profiles inside their organization.
	RoleClinician Role = "clinician"
	// RoleAdmin may access any profile.
	RoleAdmin Role = "admin"
)

// Principal identifies an authenticated requester.
type Principal struct {
	UserID string
	Role   Role
	OrgID  string
}

var (
	// ErrCrossSubject is returned when a patient requests another subject's data.
	ErrCrossSubject = errors.New("cross-subject data access is prohibited")
	// ErrOrgScope is returned when a clinician reaches outside their organization.
	ErrOrgScope = errors.New("access restricted to assigned organization scope")
	// ErrRoleDenied is returned when the requester's role does not permit the operation.
	ErrRoleDenied = errors.New("role is not permitted to perform this operation")
	// ErrUnknownSubject is returned when the subject has no registered organization.
	ErrUnknownSubject = errors.New("subject is not registered")
)

// Policy decides whether a principal may touch a subject's profile. The
// default policy implements least privilege; replace it to change tenancy
// rules without touching the agent.
type Policy interface {
	// AuthorizeSubject gates ProcessTurn/GetEntity/VerifyChain for a subject
	// whose profile belongs to subjectOrg.
	AuthorizeSubject(p Principal, subjectID, subjectOrg string) error
	// AuthorizeTriageQueue gates access to the clinician triage queue.
	AuthorizeTriageQueue(p Principal) error
}

// LeastPrivilegePolicy is the default Policy.
type LeastPrivilegePolicy struct{}

var _ Policy = LeastPrivilegePolicy{}

// AuthorizeSubject implements Policy.
func (LeastPrivilegePolicy) AuthorizeSubject(p Principal, subjectID, subjectOrg string) error {
	switch p.Role {
	case RolePatient:
		if p.UserID != subjectID {
			return fmt.Errorf("%s requesting %s: %w", p.UserID, subjectID, ErrCrossSubject)
		}
		return nil
	case RoleClinician:
		if p.OrgID != subjectOrg {
			return fmt.Errorf("%s in %s requesting subject of %s: %w", p.UserID, p.OrgID, subjectOrg, ErrOrgScope)
		}
		return nil
	case RoleAdmin:
		return nil
	default:
		return fmt.Errorf("role %q: %w", p.Role, ErrRoleDenied)
	}
}

// AuthorizeTriageQueue implements Policy.
func (LeastPrivilegePolicy) AuthorizeTriageQueue(p Principal) error {
	switch p.Role {
	case RoleClinician, RoleAdmin:
		return nil
	default:
		return fmt.Errorf("role %q: %w", p.Role, ErrRoleDenied)
	}
}

// GuardedAgent wraps an agent.Agent, enforcing the access policy before any
// call reaches the memory core. Subjects are registered with their owning
// organization; calls for unregistered subjects are refused outright so a
// typo cannot leak across tenants.
type GuardedAgent struct {
	agent  *agent.Agent
	policy Policy

	mu         sync.RWMutex
	subjectOrg map[string]string
	triage     []string
}

// GuardedAgentOptions configure a GuardedAgent.
type GuardedAgentOptions struct {
	// Policy defaults to LeastPrivilegePolicy.
	Policy Policy
}

// NewGuardedAgent wraps the given agent.
func NewGuardedAgent(a *agent.Agent, optFns ...func(o *GuardedAgentOptions)) *GuardedAgent {
	opts := GuardedAgentOptions{Policy: LeastPrivilegePolicy{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &GuardedAgent{
		agent:      a,
		policy:     opts.Policy,
		subjectOrg: make(map[string]string),
	}
}

// RegisterSubject binds a subject to its owning organization.
func (g *GuardedAgent) RegisterSubject(subjectID, orgID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subjectOrg[subjectID] = orgID
}

// EnqueueTriage appends a subject to the clinician triage queue.
func (g *GuardedAgent) EnqueueTriage(subjectID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.triage = append(g.triage, subjectID)
}

func (g *GuardedAgent) authorize(p Principal, subjectID string) error {
	g.mu.RLock()
	org, ok := g.subjectOrg[subjectID]
	g.mu.RUnlock()
	if !ok {
		return fmt.Errorf("subject %s: %w", subjectID, ErrUnknownSubject)
	}
	return g.policy.AuthorizeSubject(p, subjectID, org)
}

// ProcessTurn authorizes the principal and delegates to the wrapped agent.
func (g *GuardedAgent) ProcessTurn(ctx context.Context, p Principal, subjectID, turnID, text string) (core.Acknowledgment, error) {
	if err := g.authorize(p, subjectID); err != nil {
		return core.Acknowledgment{}, err
	}
	return g.agent.ProcessTurn(ctx, subjectID, turnID, text)
}

// GetEntity authorizes the principal and delegates to the wrapped agent.
func (g *GuardedAgent) GetEntity(p Principal, subjectID, name string) (*core.Entity, bool, error) {
	if err := g.authorize(p, subjectID); err != nil {
		return nil, false, err
	}
	return g.agent.GetEntity(subjectID, name)
}

// VerifyChain authorizes the principal and delegates to the wrapped agent.
func (g *GuardedAgent) VerifyChain(p Principal, subjectID, name string) error {
	if err := g.authorize(p, subjectID); err != nil {
		return err
	}
	return g.agent.VerifyChain(subjectID, name)
}

// TriageQueue returns the queued subjects for clinical roles.
func (g *GuardedAgent) TriageQueue(p Principal) ([]string, error) {
	if err := g.policy.AuthorizeTriageQueue(p); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	queue := make([]string, len(g.triage))
	copy(queue, g.triage)
	return queue, nil
}
