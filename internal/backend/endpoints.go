package backend

// Endpoints contains REST API endpoint paths relative to the API base URL.
type Endpoints struct {
	Me     string `json:"me"`     // e.g., "/api/v1/members/me"
	Login  string `json:"login"`  // e.g., "/api/v1/members/login"
	Logout string `json:"logout"` // e.g., "/api/v1/members/logout"
}

// DefaultEndpoints returns the paths served by the member API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Me:     "/api/v1/members/me",
		Login:  "/api/v1/members/login",
		Logout: "/api/v1/members/logout",
	}
}

// withDefaults fills empty paths from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	if e.Me == "" {
		e.Me = d.Me
	}
	if e.Login == "" {
		e.Login = d.Login
	}
	if e.Logout == "" {
		e.Logout = d.Logout
	}
	return e
}
