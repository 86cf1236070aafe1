// Package view holds the navigation state shared by pages.
package view

import "sync"

// Well-known routes.
const (
	RouteHome       = "/"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteDogs       = "/dogs"
	RouteProfile    = "/profile"
	RouteMyFosters  = "/my-fosters"
	RouteAddDog     = "/add-dog"
	RouteAdmin      = "/admin"
	RouteShelterReg = "/shelter-register"
)

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Router records the current route and the history of navigations.
type Router struct {
	mu       sync.RWMutex
	current  string
	history  []string
	onChange func(path string)
}

// NewRouter starts at the home route. onChange, when non-nil, runs after
// every navigation.
func NewRouter(onChange func(path string)) *Router {
	return &Router{current: RouteHome, onChange: onChange}
}

func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.current = path
	r.history = append(r.history, path)
	cb := r.onChange
	r.mu.Unlock()
	if cb != nil {
		cb(path)
	}
}

// Current returns the active route.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// History returns every route navigated to, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}
