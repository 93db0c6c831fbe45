// SPDX-License-Identifier: EPL-2.0

// Package config loads the editor tunables from the environment and
// optional .env files.
//
//	SOUNDFX_CHUNK_SIZE         samples per waveform level (256)
//	SOUNDFX_DEBOUNCE           quiet window before a preview render (200ms)
//	SOUNDFX_ECHO_DECAY         echo feedback gain (0.5)
//	SOUNDFX_ECHO_TAIL_PERIODS  echo delays reserved for the tail (4)
//	SOUNDFX_ECHO_COMPRESSOR    compress the echo wet path (false)
//	SOUNDFX_UNDO_LIMIT         snapshots kept per history stack, 0 is unbounded (0)
//	SOUNDFX_DISPLAY_CEILING    waveform level mapped to full scale, 0 keeps raw RMS (0)
//	SOUNDFX_PREVIEW_RATE       sample rate of the preview device (44100)
//	SOUNDFX_REDIS_ADDR         host:port of a shared project store, empty keeps it in memory
//	SOUNDFX_REDIS_PASSWORD
//	SOUNDFX_REDIS_DB           (0)
package config

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"

	"github.com/ik5/soundfx/render"
)

type Config struct {
	ChunkSize       int
	Debounce        time.Duration
	EchoDecay       float64
	EchoTailPeriods float64
	EchoCompressor  bool
	UndoLimit       int
	DisplayCeiling  float64
	PreviewRate     int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Default() Config {
	return Config{
		ChunkSize:       256,
		Debounce:        200 * time.Millisecond,
		EchoDecay:       0.5,
		EchoTailPeriods: 4,
		PreviewRate:     44100,
	}
}

func setEnvDefault(key, value string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}

// Load reads envFiles (missing files are ignored) into the environment
// without overriding variables that are already set, fills in defaults and
// parses the result.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load %v", f)
		}
	}

	d := Default()
	setEnvDefault("SOUNDFX_CHUNK_SIZE", strconv.Itoa(d.ChunkSize))
	setEnvDefault("SOUNDFX_DEBOUNCE", d.Debounce.String())
	setEnvDefault("SOUNDFX_ECHO_DECAY", strconv.FormatFloat(d.EchoDecay, 'g', -1, 64))
	setEnvDefault("SOUNDFX_ECHO_TAIL_PERIODS", strconv.FormatFloat(d.EchoTailPeriods, 'g', -1, 64))
	setEnvDefault("SOUNDFX_ECHO_COMPRESSOR", "false")
	setEnvDefault("SOUNDFX_UNDO_LIMIT", "0")
	setEnvDefault("SOUNDFX_DISPLAY_CEILING", "0")
	setEnvDefault("SOUNDFX_PREVIEW_RATE", strconv.Itoa(d.PreviewRate))
	setEnvDefault("SOUNDFX_REDIS_DB", "0")

	return Parse(os.Getenv)
}

// Parse builds a Config from the SOUNDFX_* variables returned by getenv.
// Unset variables keep their defaults.
func Parse(getenv func(string) string) (Config, error) {
	c := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{"SOUNDFX_CHUNK_SIZE", &c.ChunkSize},
		{"SOUNDFX_UNDO_LIMIT", &c.UndoLimit},
		{"SOUNDFX_PREVIEW_RATE", &c.PreviewRate},
		{"SOUNDFX_REDIS_DB", &c.RedisDB},
	}
	for _, v := range ints {
		if s := getenv(v.key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.Wrapf(err, "invalid %v=%v", v.key, s)
			}
			*v.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"SOUNDFX_ECHO_DECAY", &c.EchoDecay},
		{"SOUNDFX_ECHO_TAIL_PERIODS", &c.EchoTailPeriods},
		{"SOUNDFX_DISPLAY_CEILING", &c.DisplayCeiling},
	}
	for _, v := range floats {
		if s := getenv(v.key); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.Wrapf(err, "invalid %v=%v", v.key, s)
			}
			*v.dst = f
		}
	}

	if s := getenv("SOUNDFX_DEBOUNCE"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid SOUNDFX_DEBOUNCE=%v", s)
		}
		c.Debounce = d
	}

	if s := getenv("SOUNDFX_ECHO_COMPRESSOR"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid SOUNDFX_ECHO_COMPRESSOR=%v", s)
		}
		c.EchoCompressor = b
	}

	c.RedisAddr = getenv("SOUNDFX_REDIS_ADDR")
	c.RedisPassword = getenv("SOUNDFX_REDIS_PASSWORD")

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the ranges of every tunable.
func (c Config) Validate() error {
	switch {
	case c.ChunkSize <= 0:
		return errors.Errorf("chunk size %v must be positive", c.ChunkSize)
	case c.Debounce < 0:
		return errors.Errorf("debounce %v must not be negative", c.Debounce)
	case math.IsNaN(c.EchoDecay) || c.EchoDecay < 0 || c.EchoDecay >= 1:
		return errors.Errorf("echo decay %v outside [0, 1)", c.EchoDecay)
	case math.IsNaN(c.EchoTailPeriods) || math.IsInf(c.EchoTailPeriods, 0) || c.EchoTailPeriods < 0:
		return errors.Errorf("echo tail periods %v must not be negative", c.EchoTailPeriods)
	case c.UndoLimit < 0:
		return errors.Errorf("undo limit %v must not be negative", c.UndoLimit)
	case math.IsNaN(c.DisplayCeiling) || math.IsInf(c.DisplayCeiling, 0) || c.DisplayCeiling < 0:
		return errors.Errorf("display ceiling %v must not be negative", c.DisplayCeiling)
	case c.PreviewRate <= 0:
		return errors.Errorf("preview rate %v must be positive", c.PreviewRate)
	}
	return nil
}

// Render returns the graph options for this configuration.
func (c Config) Render() render.Options {
	opts := render.DefaultOptions()
	opts.EchoDecay = c.EchoDecay
	opts.EchoTailPeriods = c.EchoTailPeriods
	opts.EchoCompressor = c.EchoCompressor
	return opts
}
