package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tripscan/internal/app"
	"tripscan/internal/codec"
	"tripscan/internal/config"
	"tripscan/internal/domain"
	osfs "tripscan/internal/infra/fs"
	"tripscan/internal/logging"
	"tripscan/internal/render"
)

type options struct {
	configPath   string
	strict       bool
	outputHTML   string
	outputJSON   string
	inputJSON    string
	noConsole    bool
	summaryTable bool
	quiet        bool
	verbose      bool
	title        string
	noSiteLevel  bool
	noProgress   bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tripscan [trip-root]",
		Short: "Inspect trip directory structures and produce reports",
		Long: "tripscan walks a trip directory tree (site, puck, pin, lettered collection),\n" +
			"validates that every collection contains the expected subdirectories, and\n" +
			"renders the outcome as a console tree, JSON dump, or HTML report.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with non-zero status if any expected directories are missing")
	cmd.Flags().StringVar(&opts.outputHTML, "output-html", "", "Write an HTML report to the given path")
	cmd.Flags().StringVar(&opts.outputJSON, "output-json", "", "Write the collected hierarchy to a JSON file at the given path")
	cmd.Flags().StringVar(&opts.inputJSON, "input-json", "", "Load hierarchy data from a JSON file and skip filesystem traversal")
	cmd.Flags().BoolVar(&opts.noConsole, "no-console", false, "Suppress console tree output")
	cmd.Flags().BoolVar(&opts.summaryTable, "summary-table", false, "Print a one-row-per-collection summary table")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress logging")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose progress logging")
	cmd.Flags().StringVar(&opts.title, "title", "", "Optional HTML report title")
	cmd.Flags().BoolVar(&opts.noSiteLevel, "no-site-level", false, "Treat trip directories as containing pucks directly (no site level)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the interactive progress spinner")

	return cmd
}

func run(args []string, opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.title != "" {
		cfg.Title = opts.title
	}
	cfg.Strict = cfg.Strict || opts.strict
	cfg.NoSiteLevel = cfg.NoSiteLevel || opts.noSiteLevel

	logger := logging.New(os.Stderr, opts.verbose)
	if opts.quiet {
		logger = logging.Logger{}
	}

	result, source, err := obtainResult(args, opts, cfg, logger)
	if err != nil {
		return err
	}

	stats := result.Trip.CountStats()
	logger.Infof("Hierarchy ready from %s: %d sites, %d pucks, %d pins.", source, stats.Sites, stats.Pucks, stats.Pins)

	if !opts.noConsole {
		render.Tree(os.Stdout, result, cfg.ExpectedDirs)
	}
	if opts.summaryTable {
		fmt.Println(render.SummaryTable(result, cfg.ExpectedDirs))
	}

	if opts.outputHTML != "" {
		logger.Verbosef("Rendering HTML report to %s", opts.outputHTML)
		html, err := render.HTMLReport(result, render.ReportOptions{
			ExpectedDirs: cfg.ExpectedDirs,
			Title:        cfg.Title,
		})
		if err != nil {
			return err
		}
		written, err := render.WriteHTMLReport(opts.outputHTML, html)
		if err != nil {
			return err
		}
		fmt.Printf("HTML report written to %s\n", written)
	}

	if opts.outputJSON != "" {
		logger.Verbosef("Writing hierarchy JSON to %s", opts.outputJSON)
		written, err := codec.WriteFile(opts.outputJSON, result)
		if err != nil {
			return err
		}
		fmt.Printf("Hierarchy JSON written to %s\n", written)
	}

	if cfg.Strict && !result.AllExpectedPresent {
		logger.Infof("Strict mode enabled and missing directories detected; exiting with status 1.")
		return &exitCodeError{code: 1}
	}
	return nil
}

// obtainResult loads a cached hierarchy or traverses the filesystem,
// returning the result and a label for where it came from.
func obtainResult(args []string, opts options, cfg config.Config, logger logging.Logger) (domain.Result, string, error) {
	if opts.inputJSON != "" {
		result, err := codec.LoadFile(opts.inputJSON)
		if err != nil {
			return domain.Result{}, "", err
		}
		logger.Infof("Loaded hierarchy from JSON: %s", opts.inputJSON)
		return result, opts.inputJSON, nil
	}

	if len(args) == 0 {
		return domain.Result{}, "", &exitCodeError{
			code:    2,
			message: "error: provide a trip directory or use --input-json to supply cached data",
		}
	}
	root := args[0]

	builder := &app.Builder{
		FS:       osfs.OSFS{},
		Expected: cfg.ExpectedDirs,
		Logger:   logger,
	}

	interactive := !opts.quiet && !opts.noProgress && isatty.IsTerminal(os.Stderr.Fd())
	if interactive {
		result, err := buildWithSpinner(builder, root, cfg.Grouping())
		return result, root, err
	}
	result, err := builder.Build(root, cfg.Grouping())
	return result, root, err
}
