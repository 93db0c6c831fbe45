// SPDX-License-Identifier: EPL-2.0

// Package scheduler debounces render requests per sound and makes sure only
// the result of the latest request is ever applied.
//
// Every request gets a sequence number. A request waits for a quiet window;
// a newer request for the same id restarts the window and replaces the
// parameters. When the window elapses the render starts, and its result is
// applied only if no newer request for that id was issued in the meantime.
// Superseded renders run to completion and their results are dropped.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/effects"
	"github.com/ik5/soundfx/render"
)

// DefaultDebounce is the quiet window before a request is rendered.
const DefaultDebounce = 200 * time.Millisecond

var ErrClosed = errors.New("scheduler closed")

// Starter starts an asynchronous render.
type Starter interface {
	Start(ctx context.Context, buf *audio.Buffer, p effects.Params) (*render.Future, error)
}

// ApplyFunc receives the outcome of the latest request for an id. Exactly
// one of buf and err is non-nil. It runs under the scheduler's apply lock
// and must not call Close. The returned func, if not nil, runs once the
// scheduler no longer tracks the render, so it may call Close.
type ApplyFunc func(buf *audio.Buffer, err error) (then func())

type Option func(*Scheduler)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

type slot struct {
	latest    uint64
	timer     Timer
	rendering bool
}

type Scheduler struct {
	starter  Starter
	debounce time.Duration
	clock    Clock

	mu     sync.Mutex
	seq    uint64
	slots  map[string]*slot
	closed bool

	// serializes apply callbacks so an older result can never land after a
	// newer one
	applyMu sync.Mutex
	wg      sync.WaitGroup
}

func New(starter Starter, debounce time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		starter:  starter,
		debounce: debounce,
		clock:    realClock{},
		slots:    make(map[string]*slot),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Request schedules a render of buf with p for id and returns its sequence
// number. Any request for id still waiting for its window is replaced.
func (s *Scheduler) Request(ctx context.Context, id string, buf *audio.Buffer, p effects.Params, apply ApplyFunc) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	sl, ok := s.slots[id]
	if !ok {
		sl = &slot{}
		s.slots[id] = sl
	}

	if sl.timer != nil {
		sl.timer.Stop()
	}

	s.seq++
	seq := s.seq
	sl.latest = seq
	sl.timer = s.clock.AfterFunc(s.debounce, func() {
		s.fire(ctx, id, seq, buf, p, apply)
	})

	return seq, nil
}

func (s *Scheduler) fire(ctx context.Context, id string, seq uint64, buf *audio.Buffer, p effects.Params, apply ApplyFunc) {
	s.mu.Lock()
	sl, ok := s.slots[id]
	if s.closed || !ok || sl.latest != seq {
		s.mu.Unlock()
		return
	}
	sl.timer = nil
	sl.rendering = true
	s.wg.Add(1)
	s.mu.Unlock()

	ctx = logger.WithContext(ctx)
	logger.Tf(ctx, "scheduler: render %v #%v %v", id, seq, p)

	f, err := s.starter.Start(ctx, buf, p)
	if err != nil {
		s.finish(ctx, id, seq, nil, err, apply)
		return
	}

	go func() {
		<-f.Done()
		out, err := f.Result()
		s.finish(ctx, id, seq, out, err, apply)
	}()
}

// finish delivers a result and releases the render before running the
// follow-up of apply.
func (s *Scheduler) finish(ctx context.Context, id string, seq uint64, buf *audio.Buffer, err error, apply ApplyFunc) {
	then := func() func() {
		defer s.wg.Done()
		return s.deliver(ctx, id, seq, buf, err, apply)
	}()

	if then != nil {
		then()
	}
}

func (s *Scheduler) deliver(ctx context.Context, id string, seq uint64, buf *audio.Buffer, err error, apply ApplyFunc) func() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	sl, ok := s.slots[id]
	current := !s.closed && ok && sl.latest == seq
	if current {
		sl.rendering = false
	}
	s.mu.Unlock()

	if !current {
		logger.Wf(ctx, "scheduler: discard stale render %v #%v, err %v", id, seq, err)
		return nil
	}

	return apply(buf, err)
}

// Pending reports whether the latest request for id has not been applied
// yet.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[id]
	return ok && (sl.timer != nil || sl.rendering)
}

// Reset drops the waiting request for id and marks any in-flight render
// for id as stale.
func (s *Scheduler) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.slots[id]; ok {
		if sl.timer != nil {
			sl.timer.Stop()
		}
		delete(s.slots, id)
	}
}

// Close cancels all waiting requests and waits for in-flight renders to
// finish. Their results are discarded. Calling Close from an ApplyFunc
// deadlocks; call it from the returned follow-up instead.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	for id, sl := range s.slots {
		if sl.timer != nil {
			sl.timer.Stop()
		}
		delete(s.slots, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
