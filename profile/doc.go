// Package profile contains concrete core.ProfileStore implementations. The
// store interface resides in the core package; depend on core.ProfileStore in
// your code and select an implementation at wiring time.
package profile
