// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/grooverider"
	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/formats/stl"
	"github.com/ik5/grooverider/formats/wav"
)

func newCutCmd(flags *globalFlags) *cobra.Command {
	var (
		output   string
		validate bool
		playback string
	)

	cmd := &cobra.Command{
		Use:   "cut <audio>",
		Short: "Cut an audio file into a record mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			in := args[0]
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			w, err := a.pipeline.ProcessAudio(ctx, f, audio.FormatFromPath(in))
			if err != nil {
				return err
			}

			m, err := a.pipeline.BuildRecordMesh(ctx, w)
			if err != nil {
				return err
			}

			if output == "" {
				output = stl.FileName(time.Now())
			}
			if err := a.pipeline.SaveMesh(m, output); err != nil {
				return err
			}

			if !validate {
				a.bars.wait()
				a.printf("wrote %s (%d faces, %s of audio)\n", output, len(m.Faces), w.Duration().Round(time.Millisecond))
				return nil
			}

			res, err := a.pipeline.Validate(ctx, output, w)
			if err != nil {
				return err
			}
			if playback != "" {
				if err := os.WriteFile(playback, res.ExtractedWAV, 0o644); err != nil {
					return err
				}
			}

			a.bars.wait()
			a.printf("wrote %s (%d faces, %s of audio)\n", output, len(m.Faces), w.Duration().Round(time.Millisecond))
			a.printf("similarity %.3f\n", res.Score)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "STL path; record_YYYYMMDD_HHMMSS.stl when empty")
	cmd.Flags().BoolVar(&validate, "validate", false, "play the saved record back and report similarity")
	cmd.Flags().StringVar(&playback, "playback", "", "with --validate, write the played back audio to this WAV file")

	return cmd
}

func newExtractCmd(flags *globalFlags) *cobra.Command {
	var (
		output  string
		samples int
	)

	cmd := &cobra.Command{
		Use:   "extract <stl>",
		Short: "Play a record mesh back into a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 0 {
				return fmt.Errorf("--samples must not be negative")
			}

			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			in := args[0]
			w, err := a.pipeline.ExtractAudioFromMesh(cmd.Context(), in, samples)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(in, filepath.Ext(in)) + ".wav"
			}
			if err := wav.WriteFile(output, w); err != nil {
				return err
			}

			a.bars.wait()
			a.printf("wrote %s (%d samples at %d Hz)\n", output, w.Len(), w.SampleRate())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "WAV path; the STL name with .wav when empty")
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "track points to read; 0 finds the end of the groove")

	return cmd
}

func newCompareCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <original> <extracted>",
		Short: "Score how closely two audio files match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer a.close()

			waves := make([]audio.Waveform, len(args))
			for i, path := range args {
				if waves[i], err = readMono(path); err != nil {
					return err
				}
			}

			r := a.pipeline.CompareWaveforms(waves[0], waves[1])

			a.bars.wait()
			a.printf("similarity %.3f over %d samples\n", r.Score, len(r.Original))
			return nil
		},
	}
}

// readMono decodes a file as is, apart from mixing it down to one channel.
func readMono(path string) (audio.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Waveform{}, err
	}
	defer f.Close()

	src, err := grooverider.DefaultRegistry().Decode(f, audio.FormatFromPath(path))
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	return audio.Collect(audio.NewMonoMixer(src))
}
