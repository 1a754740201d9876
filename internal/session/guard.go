package session

import "github.com/workdlabs/workd/pkg/domain"

// Snapshot is the session state a route decision is made against.
type Snapshot struct {
	Initialized bool
	Identity    *domain.Identity
}

// Decision is the outcome of guarding a role-scoped view.
type Decision int

const (
	// Wait: restoration has not completed; render nothing and defer.
	Wait Decision = iota
	// RedirectLogin: no session; send to the unauthenticated entry point.
	RedirectLogin
	// RedirectOwn: session role does not match; send to the session's own dashboard.
	RedirectOwn
	// Allow: render the protected content.
	Allow
)

// Decide gates access to a view requiring the given role. It is evaluated on
// every navigation to a guarded view, never cached, since the session can be
// cleared while the application is running.
func Decide(required domain.Role, snap Snapshot) Decision {
	if !snap.Initialized {
		return Wait
	}
	if snap.Identity == nil {
		return RedirectLogin
	}
	if snap.Identity.Role != required {
		return RedirectOwn
	}
	return Allow
}
