package screens

import (
	"context"
	"sync"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Confirmer asks the operator to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// screen holds the lifecycle shared by every controller. Requests run under
// ctx, which Dispose cancels; state writes after Dispose are dropped.
type screen struct {
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	disposed bool

	status Status
	err    string
}

func newScreen(parent context.Context) *screen {
	ctx, cancel := context.WithCancel(parent)
	return &screen{
		ctx:    ctx,
		cancel: cancel,
		status: StatusIdle,
	}
}

// update applies fn to the state unless the screen was disposed.
func (s *screen) update(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	fn()
	return true
}

func (s *screen) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *screen) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
