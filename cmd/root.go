package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ethanolivertroy/dep-check/internal/checker"
	"github.com/ethanolivertroy/dep-check/internal/config"
	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	"github.com/ethanolivertroy/dep-check/internal/gate"
	"github.com/ethanolivertroy/dep-check/internal/logger"
	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
	"github.com/ethanolivertroy/dep-check/internal/project"
	"github.com/ethanolivertroy/dep-check/internal/reporter"
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

// ErrUnsatisfied is returned when unsatisfied dependencies were found and
// failing on them is enabled
var ErrUnsatisfied = errors.New("unsatisfied dependencies")

type rootFlags struct {
	configPath      string
	output          string
	format          string
	ecosystems      []string
	installPaths    []string
	noFail          bool
	noDev           bool
	includeIndirect bool
	all             bool
	verbose         bool
}

// NewRootCmd builds the dep-check command. Each command owns the gate for
// its invocation.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	g := gate.New()

	cmd := &cobra.Command{
		Use:   "dep-check [paths...]",
		Short: "Check that declared dependencies are installed and version-compatible",
		Long: `dep-check verifies that every dependency a project declares is installed
and satisfies the declared version before your tooling runs against it.

It supports multiple ecosystems:
  - npm:   package.json, node_modules/
  - bower: bower.json, bower_components/
  - Go:    go.mod, vendor/modules.txt
  - PyPI:  pyproject.toml or requirements.txt, .venv/

Version ranges, caret/tilde/x-ranges and git tags that are semantic versions
are compared against the installed version. Wildcards, URLs, local paths and
git branches are trusted as declared.

Examples:
  # Check the current directory
  dep-check

  # Check an app whose node_modules is a sibling directory
  dep-check ./app --install-path npm=./node_modules

  # Only npm, as JSON
  dep-check --ecosystem npm --format json

  # Report but exit 0
  dep-check --no-fail`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, g)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Config file (.yaml, .yml or .toml); defaults to dep-check.yaml or .dep-check.toml if present")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "terminal", "Output format: terminal, json, sarif")
	cmd.Flags().StringSliceVarP(&flags.ecosystems, "ecosystem", "e", nil, "Ecosystems to check (default: every ecosystem with a manifest)")
	cmd.Flags().StringArrayVar(&flags.installPaths, "install-path", nil, "Alternate install directory as ecosystem=path, searched after the project's own (repeatable)")
	cmd.Flags().BoolVar(&flags.noFail, "no-fail", false, "Don't exit with error code if dependencies are unsatisfied")
	cmd.Flags().BoolVar(&flags.noDev, "no-dev", false, "Skip development dependencies")
	cmd.Flags().BoolVar(&flags.includeIndirect, "include-indirect", false, "Include indirect go.mod requirements")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Report satisfied dependencies too")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and exits with 1 for unsatisfied
// dependencies and 2 for any other failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, ErrUnsatisfied) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func runCheck(cmd *cobra.Command, args []string, flags *rootFlags, g *gate.Gate) error {
	cfg, err := loadConfig(cmd, args, flags)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: isTerminal(cmd.ErrOrStderr()),
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	registry := ecosystem.NewRegistry(parsers.Options{
		ExcludeDev:      !cfg.IncludeDev,
		IncludeIndirect: cfg.IncludeIndirect,
	})

	// Load every (root, ecosystem) project view
	targets, err := loadTargets(cfg, registry, log)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		log.Warn("no dependency manifests found")
	}

	// Check
	chk := checker.New(g)
	verdicts := chk.SweepAll(targets)
	unsatisfied := checker.Unsatisfied(verdicts)

	log.Summary(verdicts)

	// Generate report
	reported := unsatisfied
	if cfg.ShowAll {
		reported = verdicts
	}
	output, err := reporter.Get(cfg.OutputFormat).Report(reported)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	// Write output
	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.WithFields(map[string]any{"path": cfg.OutputFile}).Info("report written")
	} else {
		fmt.Fprint(cmd.OutOrStdout(), string(output))
	}

	if len(unsatisfied) > 0 && cfg.FailOnUnsatisfied {
		return fmt.Errorf("%w: %w", ErrUnsatisfied, checker.Errors(unsatisfied))
	}

	return nil
}

// loadConfig reads the config file, if any, and applies explicitly set flags
func loadConfig(cmd *cobra.Command, args []string, flags *rootFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.Discover(".")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.ProjectRoots = args
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.OutputFormat = flags.format
	}
	if changed("output") {
		cfg.OutputFile = flags.output
	}
	if changed("ecosystem") {
		cfg.Ecosystems = flags.ecosystems
	}
	if changed("no-fail") {
		cfg.FailOnUnsatisfied = !flags.noFail
	}
	if changed("no-dev") {
		cfg.IncludeDev = !flags.noDev
	}
	if changed("include-indirect") {
		cfg.IncludeIndirect = flags.includeIndirect
	}
	if changed("all") {
		cfg.ShowAll = flags.all
	}

	for _, entry := range flags.installPaths {
		eco, path, ok := strings.Cut(entry, "=")
		if !ok || eco == "" || path == "" {
			return nil, apperrors.NewValidationError("install-path", fmt.Sprintf("expected ecosystem=path, got %q", entry), nil)
		}
		if cfg.InstallPaths == nil {
			cfg.InstallPaths = make(map[string][]string)
		}
		cfg.InstallPaths[eco] = append(cfg.InstallPaths[eco], path)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadTargets loads one check target per project root and ecosystem. With no
// ecosystems configured, roots without a manifest for an ecosystem are skipped
// quietly; an explicitly requested ecosystem without a manifest is logged.
func loadTargets(cfg *config.Config, registry *ecosystem.Registry, log *logger.Logger) ([]checker.Target, error) {
	names := registry.Names()
	explicit := len(cfg.Ecosystems) > 0
	if explicit {
		names = make([]models.Ecosystem, 0, len(cfg.Ecosystems))
		for _, name := range cfg.Ecosystems {
			names = append(names, models.Ecosystem(name))
		}
	}

	var targets []checker.Target
	for _, root := range cfg.ProjectRoots {
		for _, name := range names {
			spec, err := registry.Get(name)
			if err != nil {
				return nil, err
			}

			p, err := project.Load(root, spec, cfg.InstallPaths[string(name)], log)
			if errors.Is(err, apperrors.ErrNoManifest) {
				if explicit {
					log.WithFields(map[string]any{"root": root, "ecosystem": string(name)}).Warn("no manifest found")
				}
				continue
			}
			if err != nil {
				return nil, err
			}

			targets = append(targets, checker.TargetFor(p))
		}
	}

	return targets, nil
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
