// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/utils"
)

// header is the canonical 44-byte RIFF/WAVE header of a PCM file.
type header struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WriteMono16 writes a mono 16-bit PCM WAV stream to w. It needs no
// seeking, so w may be a network connection or an in-memory buffer.
func WriteMono16(w io.Writer, sampleRate int, samples []int16) error {
	dataSize := uint32(len(samples) * 2)
	h := header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   formatPCM,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	bw := bufio.NewWriterSize(w, 16*1024)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("writing WAV samples: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing WAV samples: %w", err)
	}

	return nil
}

// PCM16 converts a waveform to clipped 16-bit samples.
func PCM16(w audio.Waveform) []int16 {
	out := make([]int16, w.Len())
	for i := range out {
		out[i] = utils.FloatToInt16(w.At(i))
	}
	return out
}

// Encode returns the waveform as the bytes of a mono 16-bit WAV file.
func Encode(w audio.Waveform) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(44 + 2*w.Len())

	if err := WriteMono16(&buf, w.SampleRate(), PCM16(w)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile stores the waveform at path as a mono 16-bit WAV file.
func WriteFile(path string, w audio.Waveform) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	enc := gowav.NewEncoder(f, w.SampleRate(), 16, 1, formatPCM)

	pcm := PCM16(w)
	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: w.SampleRate()},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
