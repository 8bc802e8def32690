package navigation

import "sync"

//go:generate mockgen -source=navigator.go -destination=../mock/navigator_mock.go -package=mock

// Navigator moves the client to a route.
type Navigator interface {
	Navigate(route string)
}

// History is a [Navigator] that remembers every route it was sent to.
// Listeners registered with OnNavigate are called synchronously.
type History struct {
	mu        sync.Mutex
	routes    []string
	listeners []func(route string)
}

// NewHistory returns a History positioned at start.
func NewHistory(start string) *History {
	return &History{routes: []string{start}}
}

func (h *History) Navigate(route string) {
	h.mu.Lock()
	h.routes = append(h.routes, route)
	listeners := append([]func(string){}, h.listeners...)
	h.mu.Unlock()

	for _, l := range listeners {
		l(route)
	}
}

// OnNavigate registers fn to be called after every navigation.
func (h *History) OnNavigate(fn func(route string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Current returns the last route.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.routes) == 0 {
		return RouteLanding
	}
	return h.routes[len(h.routes)-1]
}

// Back drops the current route and returns the previous one. The first
// route is never dropped.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.routes) > 1 {
		h.routes = h.routes[:len(h.routes)-1]
	}
	if len(h.routes) == 0 {
		return RouteLanding
	}
	return h.routes[len(h.routes)-1]
}

// Routes returns a copy of the visited routes, oldest first.
func (h *History) Routes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.routes...)
}
