// SPDX-License-Identifier: EPL-2.0

// Command grooverider cuts audio into a printable record and plays records
// back.
//
//	grooverider cut song.mp3 --validate
//	grooverider extract record_20260102_030405.stl -o played.wav
//	grooverider compare song.wav played.wav
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "grooverider:", err)
		stop()
		os.Exit(1)
	}
}
