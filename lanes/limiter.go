// Copyright 2025 Berkdoc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package lanes

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// Name identifies an execution lane.
type Name string

// The four lanes of the ingestion pipeline. Each category of external call
// has its own concurrency ceiling so a slow collaborator degrades only its
// own lane.
const (
	Extraction  Name = "extraction"
	LLM         Name = "llm"
	Embedding   Name = "embedding"
	VectorStore Name = "vector-store"
)

// Config holds the concurrency ceiling per lane.
type Config struct {
	Extraction  int
	LLM         int
	Embedding   int
	VectorStore int
}

// DefaultConfig returns the default lane ceilings. The LLM lane is
// serialized because the backing model server is assumed single-stream;
// this is a policy choice, not a technical constraint.
func DefaultConfig() Config {
	return Config{
		Extraction:  3,
		LLM:         1,
		Embedding:   5,
		VectorStore: 10,
	}
}

// Stats is a point-in-time snapshot of a lane's job counters.
type Stats struct {
	Pending   int64 // submitted, waiting for a lane slot
	Active    int64 // currently executing
	Completed int64
	Failed    int64
}

type task struct {
	fn   func() error
	done chan error // buffered, capacity 1
}

// laneState owns one lane: a FIFO queue of submitted tasks and a
// fixed-capacity pool that enforces the concurrency ceiling. A single
// dispatcher goroutine drains the queue, so admission order is exactly
// submission order.
type laneState struct {
	name    Name
	pool    *ants.Pool
	ceiling int

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []*task
	inFlight int
	closed   bool

	pending   atomic.Int64
	active    atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// Limiter coordinates the four lanes.
type Limiter struct {
	lanes  map[Name]*laneState
	logger *slog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// New creates a Limiter with one lane per Config field. Ceilings below 1
// are raised to 1.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	l := &Limiter{
		lanes:  make(map[Name]*laneState, 4),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	ceilings := map[Name]int{
		Extraction:  cfg.Extraction,
		LLM:         cfg.LLM,
		Embedding:   cfg.Embedding,
		VectorStore: cfg.VectorStore,
	}
	for name, ceiling := range ceilings {
		if ceiling < 1 {
			ceiling = 1
		}
		pool, err := ants.NewPool(ceiling)
		if err != nil {
			l.Release()
			return nil, err
		}
		ln := &laneState{name: name, pool: pool, ceiling: ceiling}
		ln.cond = sync.NewCond(&ln.mu)
		l.lanes[name] = ln
		go ln.dispatch()
		l.logger.Debug("lane ready", "lane", name, "ceiling", ceiling)
	}

	return l, nil
}

// Go submits a job to the named lane and returns a channel that receives
// the job's error (or nil) exactly once. The channel is buffered, so the
// result may be ignored for fire-and-forget submissions. Go never blocks:
// jobs beyond the lane's ceiling wait in FIFO order.
func (l *Limiter) Go(name Name, job func() error) <-chan error {
	done := make(chan error, 1)

	ln, ok := l.lanes[name]
	if !ok {
		done <- fmt.Errorf("%w: %q", ErrUnknownLane, name)
		return done
	}

	t := &task{fn: job, done: done}

	ln.mu.Lock()
	if ln.closed {
		ln.mu.Unlock()
		done <- ErrLimiterReleased
		return done
	}
	ln.queue = append(ln.queue, t)
	ln.pending.Add(1)
	ln.cond.Signal()
	ln.mu.Unlock()

	return done
}

// Stats returns a snapshot of the named lane's counters.
func (l *Limiter) Stats(name Name) (Stats, bool) {
	ln, ok := l.lanes[name]
	if !ok {
		return Stats{}, false
	}
	return Stats{
		Pending:   ln.pending.Load(),
		Active:    ln.active.Load(),
		Completed: ln.completed.Load(),
		Failed:    ln.failed.Load(),
	}, true
}

// All returns snapshots for every lane.
func (l *Limiter) All() map[Name]Stats {
	out := make(map[Name]Stats, len(l.lanes))
	for name := range l.lanes {
		stats, _ := l.Stats(name)
		out[name] = stats
	}
	return out
}

// Release shuts the limiter down. Jobs still waiting in lane queues fail
// with ErrLimiterReleased; running jobs finish. The limiter should not be
// used after calling Release.
func (l *Limiter) Release() {
	for _, ln := range l.lanes {
		ln.mu.Lock()
		ln.closed = true
		ln.cond.Broadcast()
		ln.mu.Unlock()
	}
}

// dispatch admits queued tasks in FIFO order, never more than the lane's
// ceiling at once. Admission control lives here, so callers never block and
// queued tasks can be failed promptly on Release.
func (ln *laneState) dispatch() {
	for {
		ln.mu.Lock()
		for !ln.closed && (len(ln.queue) == 0 || ln.inFlight >= ln.ceiling) {
			ln.cond.Wait()
		}
		if ln.closed {
			queue := ln.queue
			ln.queue = nil
			ln.mu.Unlock()
			for _, t := range queue {
				ln.pending.Add(-1)
				ln.failed.Add(1)
				t.done <- ErrLimiterReleased
			}
			ln.pool.Release()
			return
		}
		t := ln.queue[0]
		ln.queue = ln.queue[1:]
		ln.inFlight++
		ln.mu.Unlock()

		// inFlight < ceiling == pool capacity, so this never blocks.
		if err := ln.pool.Submit(func() { ln.run(t) }); err != nil {
			ln.mu.Lock()
			ln.inFlight--
			ln.mu.Unlock()
			ln.pending.Add(-1)
			ln.failed.Add(1)
			t.done <- err
		}
	}
}

// run executes an admitted task inside a pool worker. A panicking job is
// converted to an error on its own future; siblings are unaffected.
func (ln *laneState) run(t *task) {
	ln.pending.Add(-1)
	ln.active.Add(1)

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("lane %s: job panic: %v", ln.name, r)
			}
		}()
		err = t.fn()
	}()

	ln.active.Add(-1)
	if err != nil {
		ln.failed.Add(1)
	} else {
		ln.completed.Add(1)
	}
	t.done <- err

	ln.mu.Lock()
	ln.inFlight--
	ln.cond.Signal()
	ln.mu.Unlock()
}
