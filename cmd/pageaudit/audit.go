package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/pageaudit/internal/agent"
	"github.com/nao1215/pageaudit/internal/audit"
	"github.com/nao1215/pageaudit/internal/config"
	"github.com/nao1215/pageaudit/internal/history"
	"github.com/nao1215/pageaudit/internal/model"
	"github.com/nao1215/pageaudit/internal/report"
	"github.com/nao1215/pageaudit/internal/source"
	"github.com/spf13/cobra"
)

var (
	// errPagesFailed is returned when at least one page could not be audited.
	errPagesFailed = errors.New("some pages could not be audited")

	// errBelowMinScore is returned when the average score misses --min-score.
	errBelowMinScore = errors.New("average score below minimum")
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [path...]",
		Short: "Audit rendered HTML pages",
		Long: `Audit scores rendered HTML pages along five dimensions:
- Design/Layout: viewport, layout system, typography, heading structure
- SEO/Performance: title, meta description, structured data, internal links, images
- Content/Accessibility: alt text, landmarks, headings, skip links, ARIA
- E-commerce/Conversion: calls to action, pricing, trust and social proof
- Technical/Security: HTTPS, unsafe scripting, error handling, responsiveness

Paths are .html/.htm files or directories, which are walked recursively.
Each page gets a url from --base-url joined with its path, from its
canonical link, or from its file path, in that order.

Every audit is saved to a local history database unless --no-save is given.

Examples:
  # Audit a build directory
  pageaudit audit ./public

  # Give pages their real urls
  pageaudit audit -u https://shop.example.com ./public

  # Audit the pages listed in a manifest
  pageaudit audit --manifest pages.yaml

  # Write a Markdown report and fail when the average is below 80
  pageaudit audit -m -o report.md --min-score 80 ./public

  # List every check with its deduction
  pageaudit audit --list-rules

Manifest file example:
  pages:
    - url: https://shop.example.com/
      file: build/index.html
    - url: https://shop.example.com/cart
      file: build/cart.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Input flags
	cmd.Flags().StringP("base-url", "u", "",
		"URL prefix for input files (page url = <base-url>/<relative path>)")
	cmd.Flags().String("manifest", "",
		"YAML manifest listing pages as url/file pairs")
	cmd.Flags().Int64("max-file-size", config.DefaultMaxFileSize,
		"Maximum size in bytes of one input file")

	// Audit behavior flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of pages audited concurrently")
	cmd.Flags().Int("min-score", 0,
		"Exit with an error when the average score is below this value (0 disables)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pageaudit in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save audits to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	cmd.Flags().Bool("list-rules", false,
		"List every check with its deduction and exit")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	listRules, err := cmd.Flags().GetBool("list-rules")
	if err != nil {
		return err
	}
	if listRules {
		printRules(cmd.OutOrStdout(), agent.Defaults())
		return nil
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAudit(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	var err error

	cfg.BaseURL, err = cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}

	cfg.ManifestPath, err = cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, err
	}

	cfg.MaxFileSize, err = cmd.Flags().GetInt64("max-file-size")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.MinScore, err = cmd.Flags().GetInt("min-score")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit config path must exist; a missing default one is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runAudit loads the pages, audits them and writes the report.
func runAudit(ctx context.Context, cfg *config.Config, out, errOut io.Writer, logger *slog.Logger) error {
	pages, err := loadPages(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting audit",
		"pages", len(pages),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	coordinator := audit.NewCoordinator(
		audit.WithAgents(agent.Defaults(agent.WithSiteDomains(cfg.SiteConfigs.SiteDomains()...))...),
		audit.WithLogger(logger),
	)

	progress := newProgressPrinter(errOut, len(pages))
	batch := audit.NewBatchAuditor(coordinator,
		audit.WithConcurrency(cfg.BatchSize),
		audit.WithBatchLogger(logger),
		audit.WithPageHook(progress.Page),
	)

	startTime := time.Now()
	result, runErr := batch.Run(ctx, pages)
	progress.Done(time.Since(startTime))
	if result == nil {
		return runErr
	}

	rep := model.NewBatchReport(result, time.Now())
	if err := writeReport(cfg, rep, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.SaveToDB {
		// Completed audits are kept even when the run was interrupted.
		if err := saveHistory(context.WithoutCancel(ctx), cfg.DBDir, rep, pages, logger); err != nil {
			logger.Error("failed to save audit history", "error", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%w: %d of %d", errPagesFailed, len(result.Failures), len(pages))
	}
	if cfg.MinScore > 0 && rep.Summary.AverageScore < cfg.MinScore {
		return fmt.Errorf("%w: %d < %d", errBelowMinScore, rep.Summary.AverageScore, cfg.MinScore)
	}
	return nil
}

// loadPages reads the manifest pages first, then the path arguments.
func loadPages(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]model.PageInput, error) {
	loader := source.NewLoader(
		source.WithBaseURL(cfg.BaseURL),
		source.WithMaxFileSize(cfg.EffectiveMaxFileSize()),
		source.WithSites(cfg.SiteConfigs),
		source.WithLogger(logger),
	)

	var pages []model.PageInput
	if cfg.ManifestPath != "" {
		manifestPages, err := loader.LoadManifest(ctx, cfg.ManifestPath)
		if err != nil {
			return nil, err
		}
		pages = append(pages, manifestPages...)
	}

	if len(cfg.Inputs) > 0 {
		filePages, err := loader.Load(ctx, cfg.Inputs)
		if err != nil {
			return nil, err
		}
		pages = append(pages, filePages...)
	}
	return pages, nil
}

// newReportWriter returns the writer for the requested format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewTextWriter(output)
	}
}

// writeReport writes the report to the configured file, or to out.
func writeReport(cfg *config.Config, rep *model.Report, out io.Writer) error {
	output := out
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	_, err := newReportWriter(cfg, output).Write(rep)
	return err
}

// saveHistory stores the audited pages with fingerprints of their markup.
func saveHistory(ctx context.Context, dbDir string, rep *model.Report, pages []model.PageInput, logger *slog.Logger) error {
	if len(rep.Audits) == 0 {
		return nil
	}

	store, err := history.Open(dbDir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	markup := make(map[string]string, len(pages))
	for _, p := range pages {
		markup[p.URL] = p.HTML
	}

	n, err := store.Save(ctx, history.Run{
		At:     rep.GeneratedAt,
		Audits: rep.Audits,
		Markup: markup,
	})
	if err != nil {
		return err
	}

	logger.Info("audits saved to database", "count", n, "path", store.Path())
	return nil
}
