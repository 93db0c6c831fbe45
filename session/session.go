// SPDX-License-Identifier: EPL-2.0

// Package session keeps the edit history of one sound: the committed
// buffer, the buffer the session started from, and undo/redo stacks of
// earlier snapshots.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"

	"github.com/ik5/soundfx/audio"
)

var ErrEmptyStack = errors.New("history stack is empty")

type Option func(*Session)

// WithLimit caps each stack at n snapshots, dropping the oldest. n <= 0
// leaves the stacks unbounded.
func WithLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

type Session struct {
	original  *audio.Buffer
	current   *audio.Buffer
	undo      []*audio.Buffer
	redo      []*audio.Buffer
	limit     int
	adjusting bool
}

// New starts a session whose original and current buffer is original.
func New(original *audio.Buffer, opts ...Option) *Session {
	s := &Session{original: original, current: original}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Original() *audio.Buffer { return s.original }
func (s *Session) Current() *audio.Buffer  { return s.current }

func (s *Session) push(stack []*audio.Buffer, buf *audio.Buffer) []*audio.Buffer {
	stack = append(stack, buf)
	if s.limit > 0 && len(stack) > s.limit {
		drop := len(stack) - s.limit
		clear(stack[:drop])
		stack = append(stack[:0], stack[drop:]...)
	}
	return stack
}

// PushUndo records buf as the state before a committing edit and clears
// the redo stack.
func (s *Session) PushUndo(buf *audio.Buffer) {
	s.undo = s.push(s.undo, buf)
	clear(s.redo)
	s.redo = s.redo[:0]
}

// Commit pushes the current buffer onto the undo stack and installs next.
func (s *Session) Commit(next *audio.Buffer) {
	s.PushUndo(s.current)
	s.current = next
}

// Undo installs the most recent undo snapshot and returns it. The buffer it
// replaces moves to the redo stack.
func (s *Session) Undo() (*audio.Buffer, error) {
	if len(s.undo) == 0 {
		return nil, ErrEmptyStack
	}

	prev := s.undo[len(s.undo)-1]
	s.undo[len(s.undo)-1] = nil
	s.undo = s.undo[:len(s.undo)-1]

	s.redo = s.push(s.redo, s.current)
	s.current = prev
	return prev, nil
}

// Redo is the inverse of Undo.
func (s *Session) Redo() (*audio.Buffer, error) {
	if len(s.redo) == 0 {
		return nil, ErrEmptyStack
	}

	next := s.redo[len(s.redo)-1]
	s.redo[len(s.redo)-1] = nil
	s.redo = s.redo[:len(s.redo)-1]

	s.undo = s.push(s.undo, s.current)
	s.current = next
	return next, nil
}

// Restore commits the original buffer.
func (s *Session) Restore() *audio.Buffer {
	s.Commit(s.original)
	return s.current
}

// SetAdjusting marks an uncommitted preview as in progress. While it is
// set, CanUndo and CanRedo report false.
func (s *Session) SetAdjusting(v bool) { s.adjusting = v }
func (s *Session) Adjusting() bool     { return s.adjusting }

func (s *Session) CanUndo() bool { return len(s.undo) > 0 && !s.adjusting }
func (s *Session) CanRedo() bool { return len(s.redo) > 0 && !s.adjusting }

// Depth returns the sizes of the undo and redo stacks.
func (s *Session) Depth() (undo, redo int) { return len(s.undo), len(s.redo) }
