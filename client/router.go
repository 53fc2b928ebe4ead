package client

// View names one screen of the application.
type View int

const (
	// ViewMarketing is the public landing page, also the forced
	// destination after any session expiry.
	ViewMarketing View = iota
	ViewLogin
	ViewDashboardProfile
	ViewDashboardAnalysis
	ViewDashboardSearch
)

// String returns the view's display name.
func (v View) String() string {
	switch v {
	case ViewMarketing:
		return "marketing"
	case ViewLogin:
		return "login"
	case ViewDashboardProfile:
		return "dashboard/profile"
	case ViewDashboardAnalysis:
		return "dashboard/analysis"
	case ViewDashboardSearch:
		return "dashboard/search"
	default:
		return "unknown"
	}
}

// requiresAuth reports whether the view sits behind the session guard.
func (v View) requiresAuth() bool {
	switch v {
	case ViewDashboardProfile, ViewDashboardAnalysis, ViewDashboardSearch:
		return true
	default:
		return false
	}
}

// Router decides which view is actually shown for a requested navigation.
// Guards are applied at the transition, so no sequence of Navigate calls
// can land an unauthenticated user on a dashboard view:
//
//   - logged out + dashboard view → Marketing
//   - logged in + Login → DashboardProfile (nothing to log in to)
//
// ForceLogout is the one cross-cutting transition: any 401 anywhere sends
// the user to Marketing regardless of where they were.
type Router struct {
	sessions *SessionManager
	current  View
}

// NewRouter creates a Router starting on the marketing page.
func NewRouter(sessions *SessionManager) *Router {
	return &Router{sessions: sessions, current: ViewMarketing}
}

// Navigate requests a transition to the given view and returns the view
// actually shown after guards.
func (r *Router) Navigate(v View) View {
	authed := r.sessions.IsAuthenticated()

	switch {
	case v.requiresAuth() && !authed:
		r.current = ViewMarketing
	case v == ViewLogin && authed:
		r.current = ViewDashboardProfile
	default:
		r.current = v
	}

	return r.current
}

// ForceLogout clears the session and returns to the marketing page. Wired
// to the API client's OnSessionExpired hook.
func (r *Router) ForceLogout() View {
	r.sessions.Logout()
	r.current = ViewMarketing
	return r.current
}

// Current returns the view currently shown.
func (r *Router) Current() View {
	return r.current
}
