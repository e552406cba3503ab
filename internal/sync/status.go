package sync

import (
	"sync"
	"time"
)

// Status is the sync indicator observed by front-ends.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// successRevertDelay is how long the success state is shown before the
// indicator falls back to idle.
const successRevertDelay = 3 * time.Second

// StatusFunc observes status transitions.
type StatusFunc func(Status)

// statusHub fans status transitions out to observers and handles the
// success -> idle revert. Errors stay visible until the next push.
type statusHub struct {
	mu        sync.Mutex
	current   Status
	observers []StatusFunc
	revert    *time.Timer
}

func newStatusHub() *statusHub {
	return &statusHub{current: StatusIdle}
}

func (h *statusHub) observe(fn StatusFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, fn)
}

func (h *statusHub) set(s Status) {
	h.mu.Lock()
	if h.revert != nil {
		h.revert.Stop()
		h.revert = nil
	}
	h.current = s
	observers := make([]StatusFunc, len(h.observers))
	copy(observers, h.observers)
	if s == StatusSuccess {
		h.revert = time.AfterFunc(successRevertDelay, func() { h.set(StatusIdle) })
	}
	h.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}

func (h *statusHub) get() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}
