// SPDX-License-Identifier: EPL-2.0

// Command pdspec renders voice recordings into spectrogram images.
//
// Usage:
//
//	pdspec [command] [flags]
//
// Commands:
//
//	build    - Render labelled directories and write split metadata
//	render   - Render one recording to a PNG
//	extract  - Write the mel spectrogram of one recording
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
