package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"linkedin-jobs-export/internal/app"
	"linkedin-jobs-export/internal/config"
	"linkedin-jobs-export/internal/export"
	"linkedin-jobs-export/internal/fetcher"
	"linkedin-jobs-export/internal/observability"
	"linkedin-jobs-export/internal/scraper"
)

const defaultConfigPath = "configs/config.yaml"

const banner = `================================================
    # LinkedIn Jobs Scraper, Dumps jobs in Excel
    # Running Go Version: %s
================================================
Start Your Job Scraping !!!
 i.e.,   SQL Developer
         Chennai, Tamil Nadu
   *** All the Best ***
================================================
`

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	if err := run(configPath, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred cleanup, the log file included,
// always happens.
func run(configPath string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Close()
	logger = logger.With("run_id", uuid.NewString())

	selectors := scraper.DefaultSelectors()
	if cfg.SelectorsFile != "" {
		selectors, err = scraper.LoadSelectors(cfg.SelectorsFile)
		if err != nil {
			logger.Error("Failed to load selectors", "path", cfg.SelectorsFile, "error", err.Error())
			return fmt.Errorf("failed to load selectors: %w", err)
		}
	}

	fmt.Fprintf(stdout, banner, runtime.Version())
	in := bufio.NewReader(stdin)
	keyword, err := prompt(in, stdout, "Enter Searching Job Role: ")
	if err != nil {
		return fmt.Errorf("failed to read job role: %w", err)
	}
	location, err := prompt(in, stdout, "Enter Searching Job Location: ")
	if err != nil {
		return fmt.Errorf("failed to read job location: %w", err)
	}
	fmt.Fprintln(stdout, "================================================")

	logger.Info("Run started",
		"keyword", keyword,
		"location", location,
		"config", configPath,
	)

	f := fetcher.NewFetcher(cfg, logger)
	scr := scraper.NewScraper(cfg, selectors, logger)
	orch := app.NewOrchestrator(cfg, logger, f, scr, stdout)

	ctx, cancel := app.GracefulShutdown(logger, cfg.GetRunTimeout())
	jobs, stats := orch.Run(ctx, keyword, location, cfg.Search.MaxPages)
	cancel()

	exp := export.NewExporter(cfg, logger)
	path, err := exp.Export(jobs, cfg.Export.BaseFileName, keyword)
	if err != nil {
		logger.Error("Export failed", "records", len(jobs), "error", err.Error())
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Info("Run finished",
		"records", len(jobs),
		"pages_failed", stats.PagesFailed,
		"duplicates", stats.Duplicates,
		"path", path,
	)
	fmt.Fprintf(stdout, "Saved %d job listings to '%s'\n", len(jobs), path)
	return nil
}

// loadConfig reads path, falling back to built-in defaults when the default
// config file is absent.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil && path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
		return config.LoadConfig("")
	}
	return cfg, err
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
