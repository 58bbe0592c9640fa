package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/imagepair/internal/compositor"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/pairing"
	"github.com/lehigh-university-libraries/imagepair/internal/report"
)

var errCombineFailed = errors.New("combine failed")

func newCombineCmd(opts *rootOptions) *cobra.Command {
	var width string
	var format string
	var quality int

	cmd := &cobra.Command{
		Use:   "combine FIRST SECOND",
		Short: "Combine two images side by side",
		Long: `Combine FIRST (left) and SECOND (right) into one JPEG.

The first image sets the reference width and height. The second image must
have the same height and width. The output is written to FIRST's directory as
combined_image_<YYYYMMDD_HHMMSS>.jpg.`,
		Example: `  # Combine two photos
  imagepair combine left.png right.jpg

  # Print a YAML report of each step
  imagepair combine left.png right.png --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quality") {
				quality = opts.cfg.JPEGQuality
			}
			run := executeCombine(args[0], args[1], width, quality)

			if err := report.Write(cmd.OutOrStdout(), run, format); err != nil {
				return err
			}
			if run.Failed() {
				return errCombineFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&width, "width", "", "Override the reference width (defaults to the first image's width)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format ("+strings.Join(report.Formats, ", ")+")")
	cmd.Flags().IntVarP(&quality, "quality", "q", compositor.DefaultQuality, "JPEG quality 1-100 (default from IMAGEPAIR_JPEG_QUALITY)")

	return cmd
}

// executeCombine drives one pair session the way an interactive UI would and
// records the status of every step. It stops at the first failed slot
// assignment other than a height mismatch, which Combine reports again.
func executeCombine(first, second, width string, quality int) *report.Run {
	state := pairing.New(pairing.WithCombiner(compositor.New(compositor.WithQuality(quality))))
	run := &report.Run{}
	defer func() { run.Pair = state.Snapshot() }()

	dims, err := state.SetSlotA(first)
	if err != nil {
		run.Add(report.Step{Operation: "slot-a", Path: first, Status: models.StatusFromError(err)})
		return run
	}
	run.Add(report.Step{
		Operation:  "slot-a",
		Path:       first,
		Dimensions: &dims,
		Status:     models.Success(fmt.Sprintf("Set dimensions: %dx%d", dims.Width, dims.Height)),
	})

	dimsB, err := state.SetSlotB(second)
	step := report.Step{Operation: "slot-b", Path: second}
	switch {
	case err == nil:
		step.Dimensions = &dimsB
		step.Status = models.Success(fmt.Sprintf("Second image height matches: %d pixels", dimsB.Height))
	case state.SlotB() != "":
		step.Dimensions = &dimsB
		step.Status = models.StatusFromError(err)
	default:
		step.Status = models.StatusFromError(err)
		run.Add(step)
		return run
	}
	run.Add(step)

	out, err := state.Combine(width, "")
	if err != nil {
		run.Add(report.Step{Operation: "combine", Status: models.StatusFromError(err)})
		return run
	}
	run.Output = out
	run.Add(report.Step{Operation: "combine", Path: out, Status: models.Success("Combined image saved as " + out)})
	return run
}
