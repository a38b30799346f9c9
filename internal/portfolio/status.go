package portfolio

import (
	"sync"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

const (
	MutationResetDelay = 3 * time.Second
	ContactResetDelay  = 5 * time.Second
)

type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// StatusTracker is the four-state submission status of a form. Entering
// success or error arms a single-shot timer back to idle; a new submission
// disarms it.
type StatusTracker struct {
	delay time.Duration
	after AfterFunc

	mu       sync.Mutex
	status   Status
	timer    Timer
	gen      uint64
	observer func(Status)
}

func NewStatusTracker(delay time.Duration, after AfterFunc) *StatusTracker {
	if after == nil {
		after = realAfterFunc
	}
	return &StatusTracker{delay: delay, after: after}
}

// Observe registers fn to receive every transition.
func (s *StatusTracker) Observe(fn func(Status)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

func (s *StatusTracker) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *StatusTracker) Begin() {
	s.mu.Lock()
	s.disarm()
	s.gen++
	s.status = StatusLoading
	notify := s.observer
	s.mu.Unlock()
	if notify != nil {
		notify(StatusLoading)
	}
}

func (s *StatusTracker) Succeed() { s.settle(StatusSuccess) }

func (s *StatusTracker) Fail() { s.settle(StatusError) }

func (s *StatusTracker) settle(status Status) {
	s.mu.Lock()
	s.disarm()
	s.status = status
	gen := s.gen
	s.timer = s.after(s.delay, func() { s.expire(gen) })
	notify := s.observer
	s.mu.Unlock()
	if notify != nil {
		notify(status)
	}
}

func (s *StatusTracker) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || (s.status != StatusSuccess && s.status != StatusError) {
		s.mu.Unlock()
		return
	}
	s.status = StatusIdle
	s.timer = nil
	notify := s.observer
	s.mu.Unlock()
	if notify != nil {
		notify(StatusIdle)
	}
}

func (s *StatusTracker) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
