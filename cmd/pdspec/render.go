// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/ik5/pdspec"
	"github.com/ik5/pdspec/imaging"
)

func newRenderCmd() *cobra.Command {
	var (
		augment bool
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "render <input> <output.png>",
		Short: "Render one recording to a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pdspec.New()

			var (
				img *imaging.Image
				err error
			)
			if augment {
				img, err = p.ProcessAugmented(args[0], rand.New(rand.NewPCG(seed, 0)))
			} else {
				img, err = p.Process(args[0])
			}
			if err != nil {
				return err
			}

			if err := imaging.WritePNG(args[1], img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", args[1], img.Width, img.Height)

			return nil
		},
	}

	cmd.Flags().BoolVar(&augment, "augment", false, "apply random waveform and spectrogram augmentation")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for --augment")

	return cmd
}
