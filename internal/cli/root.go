// Package cli provides the Cobra command structure for marcup.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/marcup/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by subcommands.
const (
	flagDebug    = "debug"
	flagConfig   = "config"
	flagNoConfig = "no-config"
	flagColor    = "color"
)

// NewRootCommand creates the root marcup command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "marcup",
		Short: "Parse Markdown into a position-accurate syntax tree",
		Long: `marcup parses Markdown into an mdast syntax tree in which every node
carries the exact source position of the text it came from.

Trees are printed as unist JSON, YAML, or an indented tree diagram. The
built-in grammar covers headings, fenced code, block quotes, paragraphs,
emphasis and strong text; the goldmark engine parses full CommonMark or
GitHub Flavored Markdown into the same tree.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().Bool(flagNoConfig, false, "ignore system, user and project config files")
	rootCmd.PersistentFlags().String(flagColor, "auto", "colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
