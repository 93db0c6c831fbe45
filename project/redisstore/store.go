// SPDX-License-Identifier: EPL-2.0

// Package redisstore keeps committed sound buffers in Redis and announces
// buffer changes over pub/sub, so several editors can share one project.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/ik5/soundfx/audio"
	"github.com/ik5/soundfx/project"
)

const (
	// KeySounds is the hash holding one encoded buffer per sound id.
	KeySounds = "SOUNDFX_SOUNDS"
	// KeyNames is the hash holding the display name per sound id.
	KeyNames = "SOUNDFX_SOUND_NAMES"
	// ChannelChanged carries the id of every sound whose buffer changed.
	ChannelChanged = "SOUNDFX_SOUND_CHANGED"
)

type record struct {
	SampleRate int       `json:"rate"`
	Samples    []float32 `json:"samples"`
}

func encode(buf *audio.Buffer) (string, error) {
	b, err := json.Marshal(&record{SampleRate: buf.SampleRate(), Samples: buf.Samples()})
	if err != nil {
		return "", errors.Wrapf(err, "marshal %v samples", buf.Len())
	}
	return string(b), nil
}

func decode(s string) (*audio.Buffer, error) {
	var r record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %vB", len(s))
	}
	return audio.NewBuffer(r.Samples, r.SampleRate)
}

// Store is a project.Project backed by a Redis hash.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Dial connects to the Redis server at addr and checks it answers.
func Dial(ctx context.Context, addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrapf(err, "ping redis %v", addr)
	}

	return New(rdb), nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// Add stores buf under a new random id.
func (s *Store) Add(ctx context.Context, buf *audio.Buffer) (string, error) {
	id := uuid.NewString()

	v, err := encode(buf)
	if err != nil {
		return "", err
	}

	if err := s.rdb.HSet(ctx, KeySounds, id, v).Err(); err != nil && err != redis.Nil {
		return "", errors.Wrapf(err, "hset %v %v", KeySounds, id)
	}

	logger.Tf(ctx, "redisstore: add sound %v, samples=%v, rate=%v", id, buf.Len(), buf.SampleRate())
	return id, nil
}

func (s *Store) GetSampleBuffer(ctx context.Context, id string) (*audio.Buffer, error) {
	v, err := s.rdb.HGet(ctx, KeySounds, id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %q", project.ErrUnknownSound, id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "hget %v %v", KeySounds, id)
	}

	buf, err := decode(v)
	if err != nil {
		return nil, errors.Wrapf(err, "decode sound %v", id)
	}
	return buf, nil
}

func (s *Store) SetSampleBuffer(ctx context.Context, id string, buf *audio.Buffer) error {
	if ok, err := s.rdb.HExists(ctx, KeySounds, id).Result(); err != nil {
		return errors.Wrapf(err, "hexists %v %v", KeySounds, id)
	} else if !ok {
		return fmt.Errorf("%w: %q", project.ErrUnknownSound, id)
	}

	v, err := encode(buf)
	if err != nil {
		return err
	}

	if err := s.rdb.HSet(ctx, KeySounds, id, v).Err(); err != nil && err != redis.Nil {
		return errors.Wrapf(err, "hset %v %v", KeySounds, id)
	}
	return nil
}

func (s *Store) NotifyBufferChanged(ctx context.Context, id string) error {
	if err := s.rdb.Publish(ctx, ChannelChanged, id).Err(); err != nil {
		return errors.Wrapf(err, "publish %v %v", ChannelChanged, id)
	}
	return nil
}

// Watch calls fn with the id of every changed sound until ctx is done. It
// returns once the subscription is active.
func (s *Store) Watch(ctx context.Context, fn func(id string)) error {
	ps := s.rdb.Subscribe(ctx, ChannelChanged)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return errors.Wrapf(err, "subscribe %v", ChannelChanged)
	}

	go func() {
		ctx := logger.WithContext(ctx)
		defer ps.Close()

		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				logger.Tf(ctx, "redisstore: watch done, %v", ctx.Err())
				return
			case msg, ok := <-ch:
				if !ok {
					logger.Wf(ctx, "redisstore: subscription to %v closed", ChannelChanged)
					return
				}
				fn(msg.Payload)
			}
		}
	}()

	return nil
}

func (s *Store) SoundName(ctx context.Context, id string) (string, error) {
	if ok, err := s.rdb.HExists(ctx, KeySounds, id).Result(); err != nil {
		return "", errors.Wrapf(err, "hexists %v %v", KeySounds, id)
	} else if !ok {
		return "", fmt.Errorf("%w: %q", project.ErrUnknownSound, id)
	}

	name, err := s.rdb.HGet(ctx, KeyNames, id).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", errors.Wrapf(err, "hget %v %v", KeyNames, id)
	}
	return name, nil
}

func (s *Store) RenameSound(ctx context.Context, id, name string) error {
	if ok, err := s.rdb.HExists(ctx, KeySounds, id).Result(); err != nil {
		return errors.Wrapf(err, "hexists %v %v", KeySounds, id)
	} else if !ok {
		return fmt.Errorf("%w: %q", project.ErrUnknownSound, id)
	}

	if err := s.rdb.HSet(ctx, KeyNames, id, name).Err(); err != nil && err != redis.Nil {
		return errors.Wrapf(err, "hset %v %v", KeyNames, id)
	}

	logger.Tf(ctx, "redisstore: rename sound %v to %q", id, name)
	return nil
}

var (
	_ project.Project = (*Store)(nil)
	_ project.Namer   = (*Store)(nil)
)
