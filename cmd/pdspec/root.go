// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pdspec",
		Short: "Turn voice recordings into classifier-ready spectrogram images",
		Long: `pdspec - Spectrogram images for Parkinson's speech classification.

Every recording is decoded, resampled to 16 kHz mono, trimmed of silence,
peak normalized and rendered as a 224x224 jet-colored mel spectrogram.

Examples:
  # Render every file listed in a config and write train/val/test tables
  pdspec build --config pdspec.yaml

  # Render one file, optionally with seeded augmentation
  pdspec render speech.wav speech.png
  pdspec render speech.wav speech_aug.png --augment --seed 7

  # Store the raw mel spectrogram
  pdspec extract speech.wav speech.spec`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBuildCmd(), newRenderCmd(), newExtractCmd())

	return root
}
