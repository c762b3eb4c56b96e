// SPDX-License-Identifier: EPL-2.0

// Package grooverider turns audio into a printable record and plays the
// record back to check it.
//
// A Pipeline strings the subpackages together:
//
//	decode      formats/wav, formats/mp3, formats/vorbis, formats/aiff
//	condition   conditioner (mono, padding, resampling, filters, peak normalization)
//	cut         groove (spiral track) and mesh (closed disc solid)
//	save        formats/stl
//	play back   stylus (deepest vertex under a moving search circle)
//	compare     compare (Pearson score, envelopes and spectra)
//
// # Quick Start
//
//	cfg, err := config.Load("grooverider.yaml")
//	if err != nil {
//	    return err
//	}
//	p, err := grooverider.New(*cfg, grooverider.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//
//	w, err := p.ProcessAudio(ctx, f, "mp3")
//	m, err := p.BuildRecordMesh(ctx, w)
//	err = p.SaveMesh(m, stl.FileName(time.Now()))
//	res, err := p.Validate(ctx, path, w)
//	fmt.Printf("similarity %.3f\n", res.Score)
//
// # Geometry
//
// The top of the disc is z = 0 and the bottom is z = -thickness. The
// groove runs outside-in from the lead-in radius at constant pitch. A
// sample s in [-1, 1] is cut at depth
//
//	z = -depth + s·depth·scale
//
// so silence sits at -depth and the track never rises above the surface
// while scale ≤ 1. Playback inverts the same mapping.
//
// # Errors
//
// Failures are wrapped in ErrDecode, ErrConfiguration or ErrMeshRead
// and keep the underlying package error, so both
//
//	errors.Is(err, grooverider.ErrConfiguration)
//	errors.Is(err, groove.ErrTrackTooShort)
//
// hold for audio that does not fit on the record.
//
// # Concurrency
//
// A Pipeline does not change after New. Separate goroutines may run it on
// different inputs and output paths at the same time. Stages do not poll
// their context; it is checked between stages.
package grooverider
