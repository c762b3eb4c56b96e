// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/grooverider"
)

// barTotal is the resolution of a stage bar.
const barTotal = 1000

// progressBars draws one bar per pipeline stage as it starts.
type progressBars struct {
	mu    sync.Mutex
	p     *mpb.Progress
	bars  map[grooverider.Stage]*mpb.Bar
	quiet bool
	done  bool
}

func newProgressBars(out io.Writer, quiet bool) *progressBars {
	pb := &progressBars{
		bars:  make(map[grooverider.Stage]*mpb.Bar),
		quiet: quiet,
	}
	if !quiet {
		pb.p = mpb.New(mpb.WithOutput(out), mpb.WithWidth(48))
	}
	return pb
}

func (pb *progressBars) report(stage grooverider.Stage, fraction float64) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.quiet || pb.done {
		return
	}

	bar, ok := pb.bars[stage]
	if !ok {
		bar = pb.p.AddBar(barTotal,
			mpb.PrependDecorators(
				decor.Name(string(stage)+" ", decor.WC{W: 9}),
				decor.Percentage(decor.WC{W: 5}),
			),
			mpb.AppendDecorators(
				decor.Elapsed(decor.ET_STYLE_GO),
			),
		)
		pb.bars[stage] = bar
	}

	bar.SetCurrent(int64(min(1, max(0, fraction)) * barTotal))
}

// wait finishes drawing. Bars of stages that never completed are dropped.
func (pb *progressBars) wait() {
	pb.mu.Lock()
	if pb.quiet || pb.done {
		pb.mu.Unlock()
		return
	}
	pb.done = true

	for _, bar := range pb.bars {
		if !bar.Completed() {
			bar.Abort(true)
		}
	}
	pb.mu.Unlock()

	pb.p.Wait()
}
