// SPDX-License-Identifier: EPL-2.0

// Package project defines the host model that owns the committed buffer of
// every sound, and an in-memory implementation of it.
package project

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/ik5/soundfx/audio"
)

var ErrUnknownSound = errors.New("unknown sound")

// Project stores the committed buffer per sound id.
type Project interface {
	GetSampleBuffer(ctx context.Context, id string) (*audio.Buffer, error)
	SetSampleBuffer(ctx context.Context, id string, buf *audio.Buffer) error
	// NotifyBufferChanged tells dependent views that id has a new buffer.
	NotifyBufferChanged(ctx context.Context, id string) error
}

// Namer is implemented by projects that keep a display name per sound.
type Namer interface {
	// SoundName returns the name of id, empty when it was never named.
	SoundName(ctx context.Context, id string) (string, error)
	RenameSound(ctx context.Context, id, name string) error
}

// Memory is a Project kept in process memory. It is safe for concurrent
// use.
type Memory struct {
	mu       sync.RWMutex
	sounds   map[string]*audio.Buffer
	names    map[string]string
	watchers []func(id string)
}

func NewMemory() *Memory {
	return &Memory{
		sounds: make(map[string]*audio.Buffer),
		names:  make(map[string]string),
	}
}

// Add stores buf under a new random id and returns the id.
func (m *Memory) Add(buf *audio.Buffer) string {
	id := uuid.NewString()
	m.Put(id, buf)
	return id
}

// Put stores buf under id, replacing any previous buffer.
func (m *Memory) Put(id string, buf *audio.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds[id] = buf
}

// IDs returns the stored ids in sorted order.
func (m *Memory) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sounds))
	for id := range m.sounds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Watch registers fn to be called by NotifyBufferChanged.
func (m *Memory) Watch(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

func (m *Memory) GetSampleBuffer(ctx context.Context, id string) (*audio.Buffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, ok := m.sounds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}
	return buf, nil
}

func (m *Memory) SetSampleBuffer(ctx context.Context, id string, buf *audio.Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sounds[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}
	m.sounds[id] = buf
	return nil
}

func (m *Memory) NotifyBufferChanged(ctx context.Context, id string) error {
	m.mu.RLock()
	_, ok := m.sounds[id]
	watchers := slices.Clone(m.watchers)
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}

	for _, fn := range watchers {
		fn(id)
	}
	return nil
}

func (m *Memory) SoundName(ctx context.Context, id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.sounds[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}
	return m.names[id], nil
}

func (m *Memory) RenameSound(ctx context.Context, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sounds[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}
	m.names[id] = name
	return nil
}

var (
	_ Project = (*Memory)(nil)
	_ Namer   = (*Memory)(nil)
)
