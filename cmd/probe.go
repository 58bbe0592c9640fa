package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/imagepair/internal/probe"
	"github.com/lehigh-university-libraries/imagepair/internal/validation"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "probe FILE...",
		Short:   "Print the dimensions of image files",
		Example: `  imagepair probe left.png right.jpg`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := validation.CheckImageFile(path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				dims, err := probe.Dimensions(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, dims)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be probed", failed, len(args))
			}
			return nil
		},
	}
}
