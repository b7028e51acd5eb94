package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleanmark/htmlcleaner"
)

func cleanCmd() *cobra.Command {
	var (
		opts     htmlcleaner.Options
		outPath  string
		progress bool
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean an HTML file or stdin",
		Long: `Clean reads HTML from the given file (or stdin when no file or "-"
is given), applies the removal rules, and writes the result to stdout
or to the file given with --output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				input []byte
				err   error
			)
			if len(args) == 1 && args[0] != "-" {
				input, err = os.ReadFile(args[0])
			} else {
				input, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			cleaner := htmlcleaner.New()
			if verbose {
				cleaner.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
					With().Timestamp().Logger()
			}

			var out string
			if progress {
				out, err = cleaner.CleanWithProgress(cmd.Context(), string(input), opts,
					func(percent, processed, total int) {
						fmt.Fprintf(os.Stderr, "\rcleaning... %3d%% (%d/%d elements)", percent, processed, total)
					})
				fmt.Fprintln(os.Stderr)
			} else {
				out, err = cleaner.Clean(string(input), opts)
			}
			if err != nil {
				return err
			}

			if outPath != "" {
				return os.WriteFile(outPath, []byte(out), 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.RemoveComments, "strip-comments", false, "remove HTML comments")
	cmd.Flags().BoolVar(&opts.RemoveDataAttrs, "strip-data", false, "remove data-* attributes")
	cmd.Flags().BoolVar(&opts.RemoveClasses, "strip-classes", false, "remove class attributes")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&progress, "progress", false, "report progress on stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
