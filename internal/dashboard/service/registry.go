package service

import (
	"sync"
	"time"

	"voltworks/internal/listview"
	"voltworks/internal/session"
)

// ViewRegistry hands out the live appointment-table controller for each UI
// session. Controllers are created on first use and torn down when the
// session ends, whatever the reason, so debounced search commits cannot fire
// for users that already left.
type ViewRegistry struct {
	mu          sync.Mutex
	controllers map[string]*listview.Controller[AppointmentView]
	pageSize    int
	searchDelay time.Duration
	unsubscribe func()
}

func NewViewRegistry(store *session.Store, pageSize int, searchDelay time.Duration) *ViewRegistry {
	r := &ViewRegistry{
		controllers: make(map[string]*listview.Controller[AppointmentView]),
		pageSize:    pageSize,
		searchDelay: searchDelay,
	}
	r.unsubscribe = store.Subscribe(func(ev session.Event) {
		if ev.Reason != session.ReasonLogin {
			r.Drop(ev.SessionID)
		}
	})
	return r
}

func (r *ViewRegistry) Controller(sessionID string) *listview.Controller[AppointmentView] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if controller, ok := r.controllers[sessionID]; ok {
		return controller
	}
	controller := listview.NewController(r.pageSize, r.searchDelay, AppointmentExtractors())
	r.controllers[sessionID] = controller
	return controller
}

func (r *ViewRegistry) Drop(sessionID string) {
	r.mu.Lock()
	controller, ok := r.controllers[sessionID]
	delete(r.controllers, sessionID)
	r.mu.Unlock()

	if ok {
		controller.Close()
	}
}

// Stop detaches from session events and closes every live controller.
func (r *ViewRegistry) Stop() {
	r.unsubscribe()

	r.mu.Lock()
	controllers := r.controllers
	r.controllers = make(map[string]*listview.Controller[AppointmentView])
	r.mu.Unlock()

	for _, controller := range controllers {
		controller.Close()
	}
}
