// SPDX-License-Identifier: EPL-2.0

// Package soundfx is an audio buffer editor engine: waveform display data,
// slider driven effects rendered offline, debounced previews, undo history,
// trimming and reversing.
//
// # Packages
//
//   - audio: immutable mono Buffers, streaming Sources, resampling
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders (and WAV/AIFF encoders)
//   - waveform: RMS downsampling of a Buffer into display levels
//   - effects: slider to parameter mapping and the echo, distortion, volume and compressor stages
//   - render: builds an effect graph for a Buffer and renders it offline
//   - scheduler: debounces render requests per sound and drops stale results
//   - session: undo and redo history of one sound
//   - mutate: trim and reverse
//   - project: where committed buffers live (in memory or in Redis)
//   - playback: preview devices (silent, or speakers through Ebiten)
//   - editor: ties all of the above into one controller
//   - config: environment and .env configuration
//
// # Loading and Exporting
//
// LoadMono decodes any registered format into a mono Buffer:
//
//	f, _ := os.Open("voice.mp3")
//	buf, err := soundfx.LoadMono(soundfx.NewRegistry(), soundfx.FormatOf(f.Name()), f, 44100)
//
// ExportWAV writes a Buffer back out as 16-bit PCM:
//
//	out, _ := os.Create("voice.wav")
//	err := soundfx.ExportWAV(out, buf)
//
// # Editing
//
// The editor package drives a whole edit of one sound:
//
//	proj := project.NewMemory()
//	id := proj.Add(buf)
//
//	ed, _ := editor.New(config.Default(), proj)
//	defer ed.Close()
//
//	_ = ed.Open(ctx, id)
//	_, _ = ed.Activate(effects.Echo)
//	_ = ed.Update(ctx, 0.4) // preview renders after the debounce window
//	_ = ed.Submit(ctx)      // commit, undoable
//	_ = ed.Undo(ctx)
//
// Renders never modify their input. Every committed state is a new Buffer,
// so history entries stay valid for as long as they are referenced.
package soundfx
