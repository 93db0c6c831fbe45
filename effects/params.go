// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"strings"
)

// Kind names an adjustable effect category.
type Kind int

const (
	Chipmunk Kind = iota
	Monster
	Echo
	Robot
	Volume
)

var kindNames = [...]string{
	Chipmunk: "chipmunk",
	Monster:  "monster",
	Echo:     "echo",
	Robot:    "robot",
	Volume:   "volume",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every adjustable category in display order.
func Kinds() []Kind {
	return []Kind{Chipmunk, Monster, Echo, Robot, Volume}
}

// ParseKind returns the Kind for a case-insensitive category name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Sliders holds the raw slider values. A nil field means the slider is not
// active.
type Sliders struct {
	Chipmunk *float64
	Monster  *float64
	Echo     *float64
	Robot    *float64
	Volume   *float64
}

func (s *Sliders) field(k Kind) **float64 {
	switch k {
	case Chipmunk:
		return &s.Chipmunk
	case Monster:
		return &s.Monster
	case Echo:
		return &s.Echo
	case Robot:
		return &s.Robot
	case Volume:
		return &s.Volume
	}
	return nil
}

// Get returns the value of slider k and whether it is active.
func (s Sliders) Get(k Kind) (float64, bool) {
	f := s.field(k)
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

// Set activates slider k with value v.
func (s *Sliders) Set(k Kind, v float64) {
	if f := s.field(k); f != nil {
		*f = &v
	}
}

// Clear deactivates slider k.
func (s *Sliders) Clear(k Kind) {
	if f := s.field(k); f != nil {
		*f = nil
	}
}

// Active returns the first active slider in display order.
func (s Sliders) Active() (Kind, bool) {
	for _, k := range Kinds() {
		if _, ok := s.Get(k); ok {
			return k, true
		}
	}
	return 0, false
}

// IsZero reports whether no slider is active.
func (s Sliders) IsZero() bool {
	_, ok := s.Active()
	return !ok
}

// Params are the DSP parameters of one render.
type Params struct {
	// PitchRatio is the playback rate of the source; 1 keeps the pitch.
	PitchRatio float64
	// EchoDelay is the echo delay line length in seconds; 0 disables the echo.
	EchoDelay float64
	// Distortion is the waveshaping depth in [0, 1]; 0 disables it.
	Distortion float64
	// Volume is a linear gain; nil means unity.
	Volume *float64
}

// Default returns the no-op parameters.
func Default() Params {
	return Params{PitchRatio: 1}
}

// Map converts slider values to DSP parameters. Values are not validated
// here; call [Params.Validate] before rendering.
func Map(s Sliders) Params {
	p := Default()

	switch {
	case s.Monster != nil:
		p.PitchRatio = 0.5*(1-*s.Monster) + 0.5
	case s.Chipmunk != nil:
		p.PitchRatio = *s.Chipmunk*0.5 + 1
	}

	if s.Echo != nil {
		p.EchoDelay = 0.5 * *s.Echo
	}

	if s.Robot != nil {
		p.Distortion = *s.Robot
	}

	if s.Volume != nil {
		v := *s.Volume
		p.Volume = &v
	}

	return p
}

// Parameter bounds accepted by [Params.Validate]. The slider mapping stays
// well inside them.
const (
	MinPitchRatio = 0.25
	MaxPitchRatio = 4
	// MaxEchoDelay is the longest echo delay line in seconds.
	MaxEchoDelay = 1
	MaxVolume    = 10
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports the first out-of-domain parameter, wrapped in
// ErrInvalidParameter.
func (p Params) Validate() error {
	if !finite(p.PitchRatio) || p.PitchRatio < MinPitchRatio || p.PitchRatio > MaxPitchRatio {
		return fmt.Errorf("%w: pitch ratio %v outside [%v, %v]",
			ErrInvalidParameter, p.PitchRatio, MinPitchRatio, MaxPitchRatio)
	}

	if !finite(p.EchoDelay) || p.EchoDelay < 0 || p.EchoDelay > MaxEchoDelay {
		return fmt.Errorf("%w: echo delay %vs outside [0, %v]", ErrInvalidParameter, p.EchoDelay, MaxEchoDelay)
	}

	if !finite(p.Distortion) || p.Distortion < 0 || p.Distortion > 1 {
		return fmt.Errorf("%w: distortion %v outside [0, 1]", ErrInvalidParameter, p.Distortion)
	}

	if p.Volume != nil && (!finite(*p.Volume) || *p.Volume < 0 || *p.Volume > MaxVolume) {
		return fmt.Errorf("%w: volume %v outside [0, %v]", ErrInvalidParameter, *p.Volume, MaxVolume)
	}

	return nil
}

// Gain returns the volume gain, 1 when absent.
func (p Params) Gain() float64 {
	if p.Volume == nil {
		return 1
	}
	return *p.Volume
}

// IsIdentity reports whether rendering with p leaves a buffer unchanged.
func (p Params) IsIdentity() bool {
	return p.PitchRatio == 1 && p.EchoDelay == 0 && p.Distortion == 0 && p.Gain() == 1
}

// Equal compares parameters by value.
func (p Params) Equal(o Params) bool {
	if (p.Volume == nil) != (o.Volume == nil) {
		return false
	}
	if p.Volume != nil && *p.Volume != *o.Volume {
		return false
	}
	return p.PitchRatio == o.PitchRatio && p.EchoDelay == o.EchoDelay && p.Distortion == o.Distortion
}

func (p Params) String() string {
	vol := "unity"
	if p.Volume != nil {
		vol = fmt.Sprintf("%g", *p.Volume)
	}
	return fmt.Sprintf("pitch=%g echo=%gs distortion=%g volume=%s", p.PitchRatio, p.EchoDelay, p.Distortion, vol)
}
