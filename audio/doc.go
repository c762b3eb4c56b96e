// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the record cutter is
// built on.
//
// This package contains:
//   - Source interface for decoded PCM input
//   - Registry mapping format keys to decoders
//   - MonoMixer for channel averaging
//   - Padder for leading and trailing silence
//   - Resampler for sample rate conversion
//   - Waveform, the immutable mono signal handed to groove synthesis
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Decoders in the formats subpackages return a Source, and every processor
// here wraps one, so stages chain:
//
//	mono := audio.NewMonoMixer(src)
//	padded := audio.NewPadder(mono, head, tail)
//	rs, err := audio.NewResampler(padded, 8000)
//	w, err := audio.Collect(rs)
//
// # Resampling
//
// The Resampler uses Catmull-Rom cubic interpolation. When the destination
// rate is lower than the source rate, frames first pass a Butterworth
// low-pass just below the new Nyquist frequency.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode(file, audio.FormatFromPath(name))
//
// # Sample Format
//
// Streams carry float32 samples in [-1.0, 1.0]. Waveform stores float64 so
// filtering and geometry math do not accumulate float32 rounding.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available; a read may deliver
// its last samples together with io.EOF:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
