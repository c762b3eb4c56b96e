// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding is built on github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits with any channel count and sample rate. Chunks
// other than fmt and data are skipped.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// The returned audio.Source yields float32 samples in [-1.0, 1.0].
//
// # Writing
//
// Three writers cover the places a mono 16-bit file is needed:
//   - WriteMono16 streams a header and samples to any io.Writer
//   - Encode returns a Waveform as WAV bytes for in-memory playback
//   - WriteFile stores a Waveform on disk through the go-audio encoder
//
// Floating-point samples are clipped to [-1, 1] before conversion.
package wav
