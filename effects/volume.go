// SPDX-License-Identifier: EPL-2.0

package effects

import vecmath "github.com/cwbudde/algo-vecmath"

// VolumeStage multiplies every sample by a linear gain.
type VolumeStage struct {
	gain float64
	buf  scratch
}

func NewVolumeStage(gain float64) *VolumeStage {
	return &VolumeStage{gain: gain}
}

func (v *VolumeStage) Gain() float64  { return v.gain }
func (v *VolumeStage) Bypassed() bool { return v.gain == 1 }
func (v *VolumeStage) Reset()         {}

func (v *VolumeStage) Process(buf []float32) {
	if v.gain == 1 {
		return
	}

	b := v.buf.load(buf)
	vecmath.ScaleBlock(b, b, v.gain)
	store(buf, b)
}
