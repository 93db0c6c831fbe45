// SPDX-License-Identifier: EPL-2.0

package editor

import "github.com/ik5/soundfx/audio"

// Play plays the whole preview, or the committed buffer without one.
func (e *Editor) Play() error {
	return e.PlayRange(0, 1)
}

// PlayRange plays the fractional range [start, end) of the displayed buffer.
func (e *Editor) PlayRange(start, end float64) error {
	e.mu.Lock()
	if e.sess == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	buf := e.display()
	e.mu.Unlock()

	return e.playBuffer(buf, start, end)
}

func (e *Editor) playBuffer(buf *audio.Buffer, start, end float64) error {
	e.playMu.Lock()
	e.playToken++
	token := e.playToken
	e.playhead = start
	e.playMu.Unlock()

	onProgress := func(fraction float64) {
		e.playMu.Lock()
		defer e.playMu.Unlock()
		if e.playToken == token {
			e.playhead = fraction
		}
	}

	onComplete := func() {
		if e.stopPlayhead(token) {
			e.emit(Event{Kind: EventStopped, ID: e.ID()})
		}
	}

	if err := e.device.Play(buf, start, end, onProgress, onComplete); err != nil {
		e.stopPlayhead(token)
		return err
	}
	return nil
}

// stopPlayhead clears the playhead if token is still the current playback.
func (e *Editor) stopPlayhead(token uint64) bool {
	e.playMu.Lock()
	defer e.playMu.Unlock()

	if e.playToken != token || e.playhead < 0 {
		return false
	}
	e.playhead = -1
	return true
}

// Stop ends playback.
func (e *Editor) Stop() {
	e.playMu.Lock()
	wasPlaying := e.playhead >= 0
	e.playToken++
	e.playhead = -1
	e.playMu.Unlock()

	e.device.Stop()

	if wasPlaying {
		e.emit(Event{Kind: EventStopped, ID: e.ID()})
	}
}

// Playhead returns the playback position as a fraction of the displayed
// buffer, or -1 when nothing plays.
func (e *Editor) Playhead() float64 {
	e.playMu.Lock()
	defer e.playMu.Unlock()
	return e.playhead
}
