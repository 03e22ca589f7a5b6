package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marcup/internal/logging"
	"github.com/yaklabco/marcup/pkg/config"
	"github.com/yaklabco/marcup/pkg/fsutil"
)

// Default file names written by init. Both are found by project config discovery.
const (
	defaultYAMLConfig = ".marcup.yml"
	defaultJSONConfig = ".marcup.json"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new marcup configuration file",
		Long: `Create a new .marcup.yml configuration file in the current directory.
Settings are written as commented examples unless --full is given.

Examples:
  marcup init                      Create minimal .marcup.yml
  marcup init --full               Write every setting with its default
  marcup init --format json        Create .marcup.json (JSON with comments)
  marcup init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .marcup.yml or .marcup.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.format != config.TemplateYAML && flags.format != config.TemplateJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultYAMLConfig
		if flags.format == config.TemplateJSON {
			outputPath = defaultJSONConfig
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("resolve path: %w", err))
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return withExitCode(ExitIOError, fmt.Errorf("stat %s: %w", outputPath, err))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("generate template: %w", err))
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outputPath)
	logger.Debug("created configuration file", logging.FieldPath, absPath, "full", flags.full)

	return nil
}
