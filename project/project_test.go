// SPDX-License-Identifier: EPL-2.0

package project

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/ik5/soundfx/audio"
)

func TestMemory_AddGetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	a := audio.Adopt([]float32{1, 2}, 8000)
	id := m.Add(a)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Add() id %q is not a uuid: %v", id, err)
	}

	got, err := m.GetSampleBuffer(ctx, id)
	if err != nil || got != a {
		t.Fatalf("GetSampleBuffer() = %v, %v", got, err)
	}

	b := audio.Adopt([]float32{3}, 8000)
	if err := m.SetSampleBuffer(ctx, id, b); err != nil {
		t.Fatalf("SetSampleBuffer() error = %v", err)
	}
	if got, _ := m.GetSampleBuffer(ctx, id); got != b {
		t.Error("SetSampleBuffer() did not replace the buffer")
	}
}

func TestMemory_UnknownSound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	buf := audio.Adopt(nil, 8000)

	if _, err := m.GetSampleBuffer(ctx, "nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("GetSampleBuffer() error = %v", err)
	}
	if err := m.SetSampleBuffer(ctx, "nope", buf); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("SetSampleBuffer() error = %v", err)
	}
	if err := m.NotifyBufferChanged(ctx, "nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("NotifyBufferChanged() error = %v", err)
	}
}

func TestMemory_Watch(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("meow", audio.Adopt(nil, 8000))

	var got []string
	m.Watch(func(id string) { got = append(got, id) })
	m.Watch(func(id string) { got = append(got, "again:"+id) })

	if err := m.NotifyBufferChanged(context.Background(), "meow"); err != nil {
		t.Fatalf("NotifyBufferChanged() error = %v", err)
	}
	if len(got) != 2 || got[0] != "meow" || got[1] != "again:meow" {
		t.Errorf("watchers saw %v", got)
	}
}

func TestMemory_IDs(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	for _, id := range []string{"c", "a", "b"} {
		m.Put(id, audio.Adopt(nil, 8000))
	}

	ids := m.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	id := m.Add(audio.Adopt(nil, 8000))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = m.SetSampleBuffer(ctx, id, audio.Adopt([]float32{float32(i)}, 8000))
			} else {
				_, _ = m.GetSampleBuffer(ctx, id)
			}
		}()
	}
	wg.Wait()
}

func TestMemory_Names(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	id := m.Add(audio.Adopt([]float32{1}, 8000))

	if name, err := m.SoundName(ctx, id); err != nil || name != "" {
		t.Errorf("SoundName() before rename = %q, %v", name, err)
	}

	for _, name := range []string{"meow", "meow 2", ""} {
		if err := m.RenameSound(ctx, id, name); err != nil {
			t.Fatalf("RenameSound(%q) error = %v", name, err)
		}
		if got, err := m.SoundName(ctx, id); err != nil || got != name {
			t.Errorf("SoundName() = %q, %v, want %q", got, err, name)
		}
	}

	if err := m.RenameSound(ctx, "nope", "x"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("RenameSound(unknown) error = %v", err)
	}
	if _, err := m.SoundName(ctx, "nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("SoundName(unknown) error = %v", err)
	}
}
