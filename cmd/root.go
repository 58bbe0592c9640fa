package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/imagepair/internal/config"
)

// rootOptions is filled in before any subcommand runs.
type rootOptions struct {
	verbose bool
	cfg     *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "imagepair",
		Short: "Combine two same-sized images side by side",
		Long: `Imagepair combines two images of the same size into a single side-by-side JPEG.

The first image fixes the width and height; the second image must match them.
The result is written next to the first image as combined_image_<timestamp>.jpg.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level := cfg.SlogLevel()
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCombineCmd(opts))
	cmd.AddCommand(newProbeCmd())

	return cmd
}
