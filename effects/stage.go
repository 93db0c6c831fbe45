// SPDX-License-Identifier: EPL-2.0

package effects

// Stage processes a mono block in place.
type Stage interface {
	Process(buf []float32)
	// Reset clears any state carried between blocks.
	Reset()
	// Bypassed reports whether Process leaves samples unchanged.
	Bypassed() bool
}

// scratch holds a float64 copy of a block for the stages that process in
// double precision. It grows to the largest block seen and is then reused.
type scratch []float64

func (s *scratch) load(src []float32) []float64 {
	if cap(*s) < len(src) {
		*s = make([]float64, len(src))
	}
	buf := (*s)[:len(src)]
	for i, x := range src {
		buf[i] = float64(x)
	}
	return buf
}

func store(dst []float32, src []float64) {
	for i, v := range src {
		dst[i] = float32(v)
	}
}

// Chain runs its stages in order.
type Chain []Stage

func (c Chain) Process(buf []float32) {
	for _, s := range c {
		if !s.Bypassed() {
			s.Process(buf)
		}
	}
}

func (c Chain) Reset() {
	for _, s := range c {
		s.Reset()
	}
}

// Bypassed reports whether every stage is bypassed.
func (c Chain) Bypassed() bool {
	for _, s := range c {
		if !s.Bypassed() {
			return false
		}
	}
	return true
}

// Active returns the number of stages that alter the signal.
func (c Chain) Active() int {
	var n int
	for _, s := range c {
		if !s.Bypassed() {
			n++
		}
	}
	return n
}

var _ Stage = Chain(nil)
