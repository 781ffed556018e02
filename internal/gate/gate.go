// Package gate decides, for each navigation, whether the requested view
// is shown or the user is redirected based on the login state.
package gate

// View is a navigation target.
type View int

const (
	// Root is the entry point with no explicit target.
	Root View = iota
	// Login is the login form.
	Login
	// Register is the registration form.
	Register
	// Dashboard is the authenticated-only task list.
	Dashboard
	// Public views are reachable in both states (help, version, logout).
	Public
)

func (v View) String() string {
	switch v {
	case Root:
		return "root"
	case Login:
		return "login"
	case Register:
		return "register"
	case Dashboard:
		return "dashboard"
	case Public:
		return "public"
	}
	return "unknown"
}

// Decision is the outcome of a navigation.
type Decision struct {
	// View is what gets rendered.
	View View
	// Redirected is true when View differs from the requested target.
	Redirected bool
}

// Decide applies the routing rule. Redirect targets are fixed and do not
// depend on the requested view beyond its kind.
func Decide(requested View, authenticated bool) Decision {
	switch requested {
	case Root:
		if authenticated {
			return Decision{View: Dashboard, Redirected: true}
		}
		return Decision{View: Login, Redirected: true}
	case Dashboard:
		if !authenticated {
			return Decision{View: Login, Redirected: true}
		}
	case Login, Register:
		if authenticated {
			return Decision{View: Dashboard, Redirected: true}
		}
	}
	return Decision{View: requested}
}

// AuthState reports whether a user is logged in.
type AuthState interface {
	Authenticated() bool
}

// Gate evaluates navigations against the current session.
type Gate struct {
	auth AuthState
}

// New creates a Gate over auth.
func New(auth AuthState) *Gate {
	return &Gate{auth: auth}
}

// Navigate decides for requested using the session state as it is now.
func (g *Gate) Navigate(requested View) Decision {
	return Decide(requested, g.auth.Authenticated())
}
