// Package eventloop runs the compositor's single control thread. Callbacks
// posted to a Loop, including repeating task ticks, all run on the
// goroutine that called Run.
package eventloop

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/1broseidon/winframe/internal/logging"
)

// Task is a handle to a repeating callback.
type Task interface {
	Stop()
	Active() bool
}

// Config holds configuration for a Loop.
type Config struct {
	QueueSize int
	Logger    *slog.Logger
}

// Loop serializes callbacks onto one goroutine.
type Loop struct {
	queue  chan func()
	logger *slog.Logger
}

// New creates a loop with the given configuration.
func New(cfg Config) *Loop {
	size := cfg.QueueSize
	if size <= 0 {
		size = 256
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Logger()
	}
	return &Loop{queue: make(chan func(), size), logger: logger}
}

// Post queues fn to run on the loop goroutine. It blocks while the queue is
// full.
func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// Run executes queued callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped")
			return ctx.Err()
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

// RunPending executes the callbacks already queued and returns how many
// ran. It never blocks.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			l.invoke(fn)
			n++
		default:
			return n
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("event loop: callback panic recovered", "error", err)
		}
	}()
	fn()
}

// Every runs fn on the loop every interval until the returned task is
// stopped. Ticks that were queued before Stop are dropped.
func (l *Loop) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := &repeatingTask{done: make(chan struct{})}
	t.active.Store(true)
	tick := func() {
		if t.active.Load() {
			fn()
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				select {
				case l.queue <- tick:
				case <-t.done:
					return
				}
			}
		}
	}()
	return t
}

type repeatingTask struct {
	active atomic.Bool
	done   chan struct{}
}

func (t *repeatingTask) Stop() {
	if t.active.CompareAndSwap(true, false) {
		close(t.done)
	}
}

func (t *repeatingTask) Active() bool {
	return t.active.Load()
}
