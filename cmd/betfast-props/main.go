package main

import (
	"errors"
	"log"
	"os"

	"betfast-props-scraper/internal/app"
	"betfast-props-scraper/internal/auth"
	"betfast-props-scraper/internal/browser"
	"betfast-props-scraper/internal/config"
	"betfast-props-scraper/internal/export"
	"betfast-props-scraper/internal/nav"
	"betfast-props-scraper/internal/observability"
	"betfast-props-scraper/internal/scrape"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	// Credentials are checked before anything touches a browser.
	creds, err := config.LoadCredentials()
	if err != nil {
		logger.Error("configuration error", "error", err.Error())
		os.Exit(1)
	}

	selectors, err := cfg.LoadSelectorsFile()
	if err != nil {
		logger.Error("failed to load selectors", "error", err.Error())
		os.Exit(1)
	}

	launch := func() (browser.Session, error) {
		return browser.Launch(browser.Options{
			ChromePath: cfg.Browser.ChromePath,
			Headless:   cfg.Browser.Headless,
		}, logger)
	}

	opener := auth.NewOpener(launch, cfg.Site.BaseURL, selectors.Login, cfg.GetLoginTimeout(), logger)
	navigator := nav.NewNavigator(selectors.Navigation, selectors.Ready, cfg.GetStepTimeout(), cfg.GetReadyTimeout(), logger)
	extractor := scrape.NewExtractor(selectors.Table, cfg.GetTableTimeout(), scrape.Settle{
		PollInterval: cfg.GetSettlePollInterval(),
		StablePolls:  cfg.Settle.StablePolls,
		MaxWait:      cfg.GetSettleWindow(),
	}, logger)
	writer := export.NewCSVWriter(cfg.Output.Path, logger)

	orchestrator := app.NewOrchestrator(opener, navigator, extractor, writer, logger)

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	stats, err := orchestrator.Run(ctx, creds)
	if err != nil {
		logger.Error("run failed", "stage", stageName(err), "error", err.Error())
		os.Exit(1)
	}

	logger.Info("saved props",
		"rows", stats.Rows,
		"path", cfg.Output.Path,
		"duration", stats.Duration.String(),
	)
}

// stageName classifies a fatal error so the operator can see at a glance
// which stage gave up.
func stageName(err error) string {
	var stepErr *nav.StepError
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "configuration"
	case errors.Is(err, auth.ErrLoginFailed):
		return "login"
	case errors.As(err, &stepErr):
		return "navigation:" + stepErr.Step
	case errors.Is(err, scrape.ErrTableNotFound):
		return "extraction"
	default:
		return "pipeline"
	}
}
