// SPDX-License-Identifier: EPL-2.0

package redisstore

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/project"
)

func TestMain(m *testing.M) {
	// Disable the logger during all tests.
	logger.Switch(io.Discard)

	os.Exit(m.Run())
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	in := audio.Adopt([]float32{0, 0.1, -0.25, 1.5, -3e-7}, 22050)

	s, err := encode(in)
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}

	out, err := decode(s)
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("decode(encode(B)) = %v, want %v", out.Samples(), in.Samples())
	}
}

func TestCodec_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := decode("not json"); err == nil {
		t.Error("decode(garbage) succeeded")
	}
	if _, err := decode(`{"rate":0,"samples":[1]}`); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("decode(rate 0) error = %v, want ErrInvalidRate", err)
	}
}

// dialTest connects to the server named by SOUNDFX_TEST_REDIS or skips.
func dialTest(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("SOUNDFX_TEST_REDIS")
	if addr == "" {
		t.Skip("SOUNDFX_TEST_REDIS not set")
	}

	s, err := Dial(context.Background(), addr, "", 0)
	if err != nil {
		t.Fatalf("Dial(%v) error = %v", addr, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Redis(t *testing.T) {
	s := dialTest(t)
	ctx := context.Background()

	in := audio.Adopt([]float32{0.5, -0.5}, 8000)
	id, err := s.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	t.Cleanup(func() {
		s.rdb.HDel(ctx, KeySounds, id)
		s.rdb.HDel(ctx, KeyNames, id)
	})

	got, err := s.GetSampleBuffer(ctx, id)
	if err != nil || !got.Equal(in) {
		t.Fatalf("GetSampleBuffer() = %v, %v", got, err)
	}

	changed := make(chan string, 1)
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.Watch(wctx, func(id string) { changed <- id }); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	next := audio.Adopt([]float32{1}, 8000)
	if err := s.SetSampleBuffer(ctx, id, next); err != nil {
		t.Fatalf("SetSampleBuffer() error = %v", err)
	}
	if err := s.NotifyBufferChanged(ctx, id); err != nil {
		t.Fatalf("NotifyBufferChanged() error = %v", err)
	}

	select {
	case got := <-changed:
		if got != id {
			t.Errorf("watch saw %q, want %q", got, id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	if _, err := s.GetSampleBuffer(ctx, "missing-"+id); !errors.Is(err, project.ErrUnknownSound) {
		t.Errorf("GetSampleBuffer(missing) error = %v", err)
	}
	if err := s.SetSampleBuffer(ctx, "missing-"+id, next); !errors.Is(err, project.ErrUnknownSound) {
		t.Errorf("SetSampleBuffer(missing) error = %v", err)
	}

	if name, err := s.SoundName(ctx, id); err != nil || name != "" {
		t.Errorf("SoundName() before rename = %q, %v", name, err)
	}
	if err := s.RenameSound(ctx, id, "meow"); err != nil {
		t.Fatalf("RenameSound() error = %v", err)
	}
	if name, err := s.SoundName(ctx, id); err != nil || name != "meow" {
		t.Errorf("SoundName() = %q, %v, want meow", name, err)
	}
	if err := s.RenameSound(ctx, "missing-"+id, "x"); !errors.Is(err, project.ErrUnknownSound) {
		t.Errorf("RenameSound(missing) error = %v", err)
	}
	if _, err := s.SoundName(ctx, "missing-"+id); !errors.Is(err, project.ErrUnknownSound) {
		t.Errorf("SoundName(missing) error = %v", err)
	}
}
