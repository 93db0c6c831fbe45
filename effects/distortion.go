// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"

	dspfx "github.com/cwbudde/algo-dsp/dsp/effects"

	"github.com/ik5/soundfx/utils"
)

// MaxDistortionDrive is the input drive applied at a full distortion amount.
const MaxDistortionDrive = 20

// DistortionStage is a memoryless waveshaper. For an amount a the input,
// clamped to [-1, 1], is driven by 1+(MaxDistortionDrive-1)*a into the
// rational curve
//
//	f(x) = clamp(2x / (1+|x|), -1, 1)
//
// and blended with the dry signal at a wet mix of a. The blend keeps 0 and
// ±1 fixed and reaches the dry signal continuously as a goes to zero.
type DistortionStage struct {
	amount float64
	shaper *dspfx.Distortion
	buf    scratch
}

// NewDistortionStage returns a waveshaper for amount in [0, 1]. Zero is a
// passthrough.
func NewDistortionStage(sampleRate int, amount float64) (*DistortionStage, error) {
	if !finite(amount) || amount < 0 || amount > 1 {
		return nil, fmt.Errorf("%w: distortion %v outside [0, 1]", ErrInvalidParameter, amount)
	}

	d := &DistortionStage{amount: amount}
	if amount == 0 {
		return d, nil
	}

	shaper, err := dspfx.NewDistortion(float64(sampleRate),
		dspfx.WithDistortionMode(dspfx.DistortionModeWaveshaper2),
		dspfx.WithDistortionShape(1),
		dspfx.WithDistortionDrive(1+(MaxDistortionDrive-1)*amount),
		dspfx.WithDistortionMix(amount),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: distortion %v: %v", ErrInvalidParameter, amount, err)
	}
	d.shaper = shaper
	return d, nil
}

func (d *DistortionStage) Amount() float64 { return d.amount }
func (d *DistortionStage) Bypassed() bool  { return d.shaper == nil }

func (d *DistortionStage) Reset() {
	if d.shaper != nil {
		d.shaper.Reset()
	}
}

func (d *DistortionStage) Process(buf []float32) {
	if d.shaper == nil {
		return
	}

	for i, x := range buf {
		buf[i] = utils.Clamp(x, -1, 1)
	}

	wet := d.buf.load(buf)
	d.shaper.ProcessInPlace(wet)
	store(buf, wet)
}
