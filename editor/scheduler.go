package editor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/field"
)

// Scheduler batches field recomputes behind a trailing-edge debounce so
// rapid drag sequences cost one synthesis, not one per event
// A generation counter makes delivery last-writer-wins: a field that was
// superseded while synthesizing is discarded, never applied out of order
type Scheduler struct {
	delay time.Duration
	out   chan *field.Buffer

	gen atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler creates a scheduler with the given quiescence interval
func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay: delay,
		out:   make(chan *field.Buffer, 1),
	}
}

// Fields delivers completed pixel fields; only the newest is ever pending
func (s *Scheduler) Fields() <-chan *field.Buffer {
	return s.out
}

// Invalidate schedules a recompute of the given set after the
// quiescence interval, superseding any recompute still pending
// The point slice must be the caller's own copy; it is retained until
// the synthesis runs
func (s *Scheduler) Invalidate(pts []core.ControlPoint, cfg field.Config) {
	gen := s.gen.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.synthesize(gen, pts, cfg)
	})
}

// Stop cancels any pending recompute
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) synthesize(gen uint64, pts []core.ControlPoint, cfg field.Config) {
	buf, err := field.Synthesize(pts, cfg)
	if err != nil {
		return
	}
	if s.gen.Load() != gen {
		// Superseded while synthesizing
		return
	}
	// Replace any undelivered field with the newer one
	for {
		select {
		case s.out <- buf:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}
