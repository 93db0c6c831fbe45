// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/resample"
)

// ConvertRate resamples buf to dstRate with a windowed-sinc polyphase
// filter. The output is aligned with the input: the filter delay is removed
// and the length is ceil(len * dstRate/srcRate). A buffer already at
// dstRate is returned as is.
func ConvertRate(buf *Buffer, dstRate int) (*Buffer, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: target %d", ErrInvalidRate, dstRate)
	}
	if buf.SampleRate() == dstRate {
		return buf, nil
	}

	r, err := resample.NewForRates(float64(buf.SampleRate()), float64(dstRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %d Hz to %d Hz: %v", ErrInvalidRate, buf.SampleRate(), dstRate, err)
	}

	up, down := r.Ratio()

	// linear phase: the delay is half the prototype at the upsampled rate
	center := float64(r.TapsPerPhase()*up-1) / 2
	lag := int(math.Round(center / float64(down)))

	n := buf.Len()
	in := make([]float64, n+int(math.Ceil(center/float64(up)))+1)
	for i, x := range buf.Samples() {
		in[i] = float64(x)
	}
	out := r.Process(in)

	samples := make([]float32, int(math.Ceil(float64(n)*float64(up)/float64(down))))
	for i := range samples {
		if j := i + lag; j < len(out) {
			samples[i] = float32(out[j])
		}
	}

	return Adopt(samples, dstRate), nil
}
