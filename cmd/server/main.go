package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/estimate"
	estimatemetrics "crawlreceipt/internal/estimate/metrics"
	"crawlreceipt/internal/estimate/providers"
	"crawlreceipt/internal/estimate/providers/commoncrawl"
	"crawlreceipt/internal/platform/config"
	"crawlreceipt/internal/platform/httpserver"
	"crawlreceipt/internal/platform/logger"
	"crawlreceipt/internal/platform/metrics"
	"crawlreceipt/internal/receipt"
	receipthandler "crawlreceipt/internal/receipt/handler"
	"crawlreceipt/internal/receipt/render"
	"crawlreceipt/internal/robots"
	robotshandler "crawlreceipt/internal/robots/handler"
	httptransport "crawlreceipt/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// options override the environment. Empty values keep whatever FromEnv found.
type options struct {
	Addr            string `long:"addr" description:"Listen address"`
	IndexBaseURL    string `long:"index-base-url" description:"Common Crawl index server root"`
	PublicURL       string `long:"public-url" description:"Public origin used in share links"`
	LogLevel        string `long:"log-level" description:"debug, info, warn or error"`
	LogFormat       string `long:"log-format" description:"json or text"`
	CalibrationFile string `long:"calibration" description:"YAML calibration file replacing the built-in one"`
}

func (o options) apply(cfg *config.Server) {
	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.IndexBaseURL != "" {
		cfg.IndexBaseURL = o.IndexBaseURL
	}
	if o.PublicURL != "" {
		cfg.PublicURL = o.PublicURL
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.CalibrationFile != "" {
		cfg.CalibrationFile = o.CalibrationFile
	}
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg := config.FromEnv()
	opts.apply(&cfg)
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// indexProviders builds one CDX client per index id. Index lookups identify
// themselves separately from robots.txt fetches.
func indexProviders(cfg config.Server, ids []string) []providers.Provider {
	return commoncrawl.NewSet(cfg.IndexBaseURL, ids, commoncrawl.WithUserAgent(commoncrawl.DefaultUserAgent))
}

func run(cfg config.Server, log *slog.Logger) error {
	cal, err := config.LoadCalibration(cfg.CalibrationFile)
	if err != nil {
		return err
	}
	crawlers := catalog.FromCalibration(cal.Crawlers)

	indexes := indexProviders(cfg, cal.Index.IDs)
	estimator, err := estimate.New(indexes, estimate.ConfigFromCalibration(cal),
		estimate.WithLogger(log),
		estimate.WithMetrics(estimatemetrics.New()),
	)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.PublicURL)
	if err != nil {
		return err
	}
	checker := robots.New(crawlers, robots.WithUserAgent(cfg.RobotsUserAgent), robots.WithLogger(log))

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:   log,
		Metrics:  metrics.New(),
		Crawlers: crawlers,
		Handlers: []httptransport.Registrar{
			receipthandler.New(estimator, crawlers, receipt.PricingFromCalibration(cal.Pricing), renderer, log),
			robotshandler.New(checker, log),
		},
	})
	srv := httpserver.New(cfg.Addr, router, cal.Index.Timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting crawlreceipt",
			"addr", cfg.Addr,
			"indexes", len(indexes),
			"crawlers", crawlers.Len(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
