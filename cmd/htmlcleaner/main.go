package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "htmlcleaner",
		Short: "Strip presentational clutter from HTML",
		Long: `htmlcleaner removes style and script elements, stylesheet links,
legacy presentational attributes, and event-handler attributes from
HTML documents or fragments, with optional removal of comments,
data-* attributes, and classes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		cleanCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("htmlcleaner %s (%s)\n", version, commit)
		},
	}
}
