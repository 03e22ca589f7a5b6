package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/marcup/internal/configloader"
	"github.com/yaklabco/marcup/internal/logging"
	"github.com/yaklabco/marcup/pkg/config"
	"github.com/yaklabco/marcup/pkg/fsutil"
	"github.com/yaklabco/marcup/pkg/markdown"
	goldmarkparser "github.com/yaklabco/marcup/pkg/parser/goldmark"
	"github.com/yaklabco/marcup/pkg/reporter"
	"github.com/yaklabco/marcup/pkg/runner"
)

// stdinPath names standard input in output and errors.
const stdinPath = "<stdin>"

type parseFlags struct {
	format     string
	engine     string
	flavor     string
	output     string
	positions  bool
	detectLang bool
	summary    bool
	compact    bool
	jobs       int
	width      int
	ignore     []string
	extensions []string
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...|-]",
		Short: "Parse Markdown files and print their syntax trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse Markdown files and print their syntax trees.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Specify paths to parse specific files or directories,
or "-" to read a single document from standard input.

A single file is printed as its bare unist tree. Several files are printed
as one document listing each file's tree or error, followed by a summary.

Examples:
  marcup parse README.md                # Print the tree as JSON
  marcup parse -p README.md             # Include source positions
  marcup parse -f tree docs/            # Tree diagrams for a directory
  cat notes.md | marcup parse -f yaml - # Parse standard input
  marcup parse --engine goldmark --flavor gfm README.md
  marcup parse -f summary .             # Statistics only
  marcup parse -o tree.json README.md   # Write output to a file`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	start := time.Now()

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	cfg, err := loadParseConfig(cmd, flags, workDir, logger)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	parseRunner := runner.New(newParser(cfg, logger))
	parseRunner.Logger = logger

	var result *runner.Result
	switch {
	case len(args) == 1 && args[0] == "-":
		content, err := fsutil.ReadAll(ctx, cmd.InOrStdin(), fsutil.DefaultMaxFileSize)
		if err != nil {
			return withExitCode(ExitIOError, err)
		}
		result = parseRunner.ParseContent(ctx, stdinPath, content)
	case slices.Contains(args, "-"):
		return usageError(errors.New(`"-" cannot be combined with other paths`))
	default:
		runOpts := runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			Extensions:   cfg.Extensions,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
		}
		logger.Debug("starting parse run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)

		result, err = parseRunner.Run(ctx, runOpts)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("parse run: %w", err))
		}
	}

	logger.Debug("parse run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	if err := writeReport(cmd, flags, cfg, format, workDir, result); err != nil {
		return err
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return withExitCode(code, ErrParseFailed)
	}
	return nil
}

// loadParseConfig resolves configuration with the command's flags taking precedence.
func loadParseConfig(cmd *cobra.Command, flags *parseFlags, workDir string, logger *log.Logger) (*config.Config, error) {
	changed := cmd.Flags().Changed

	cliCfg := &config.Config{Jobs: flags.jobs}
	if changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if changed("engine") {
		cliCfg.Engine = config.Engine(flags.engine)
	}
	if changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("positions") {
		cliCfg.Positions = config.Bool(flags.positions)
	}
	if changed("detect-lang") {
		cliCfg.DetectLanguage = config.Bool(flags.detectLang)
	}
	if changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cliCfg.Extensions = flags.extensions
	}
	if changed(flagColor) {
		color, err := cmd.Flags().GetString(flagColor)
		if err != nil {
			return nil, usageError(fmt.Errorf("get color flag: %w", err))
		}
		cliCfg.Color = config.ColorMode(color)
	}

	if validation := configloader.Validate(cliCfg); !validation.Valid() {
		return nil, usageError(&validation.Errors[0])
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, usageError(fmt.Errorf("get config flag: %w", err))
	}
	noConfig, err := cmd.Flags().GetBool(flagNoConfig)
	if err != nil {
		return nil, usageError(fmt.Errorf("get no-config flag: %w", err))
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	cfg := loadResult.Config
	if debug, _ := cmd.Flags().GetBool(flagDebug); !debug {
		logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldEngine, cfg.Engine,
		logging.FieldFlavor, cfg.Flavor,
		"format", cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// newParser creates the parser engine selected by cfg.
func newParser(cfg *config.Config, logger *log.Logger) runner.Parser {
	if cfg.Engine == config.EngineGoldmark {
		if cfg.WantLanguageDetection() {
			logger.Warn("language detection is only supported by the marcup engine", logging.FieldEngine, cfg.Engine)
		}
		return goldmarkparser.New(string(cfg.Flavor))
	}
	return markdown.New(
		markdown.WithLanguageDetection(cfg.WantLanguageDetection()),
		markdown.WithLogger(logger),
	)
}

// writeReport renders result to stdout, or atomically to the --output file.
func writeReport(
	cmd *cobra.Command,
	flags *parseFlags,
	cfg *config.Config,
	format reporter.Format,
	workDir string,
	result *runner.Result,
) error {
	ctx := cmd.Context()

	var buf bytes.Buffer
	var out io.Writer = cmd.OutOrStdout()
	if flags.output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		Positions:   cfg.WantPositions(),
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		Width:       flags.width,
		WorkingDir:  workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if flags.output == "" {
		return nil
	}
	if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write output: %w", err))
	}
	logging.FromContext(ctx).Debug("wrote output", logging.FieldPath, flags.output, logging.FieldBytes, buf.Len())
	return nil
}

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatJSON), "output format: json, yaml, tree, summary")
	cmd.Flags().BoolVarP(&flags.positions, "positions", "p", false, "include source positions on every node")
	cmd.Flags().StringVar(&flags.engine, "engine", string(config.EngineMarcup), "parser engine: marcup, goldmark")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor for the goldmark engine: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "detect the language of fenced code without an info string")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to parse when walking directories")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "append a one-line summary to tree output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write minified JSON")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate tree labels to this width (0 = terminal width, -1 = never)")
}
