// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/pdspec"
	"github.com/ik5/pdspec/spectrogram"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <input> <output.spec>",
		Short: "Write the mel spectrogram of one recording",
		Long: `Write the cropped log-power mel spectrogram of one recording in the
half precision matrix format read by spectrogram.ReadFile.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pdspec.New().Spectrogram(args[0])
			if err != nil {
				return err
			}
			if err := spectrogram.WriteFile(args[1], m); err != nil {
				return err
			}

			r, c := m.Dims()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bands x %d frames)\n", args[1], r, c)

			return nil
		},
	}
}
