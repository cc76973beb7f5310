// Command receipt prints the AI scraping receipt for one domain.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"crawlreceipt/internal/catalog"
	"crawlreceipt/internal/estimate"
	"crawlreceipt/internal/estimate/providers/commoncrawl"
	"crawlreceipt/internal/platform/config"
	"crawlreceipt/internal/platform/logger"
	"crawlreceipt/internal/receipt"
	"crawlreceipt/pkg/domain"
)

type options struct {
	JSON         bool          `long:"json" description:"Print the receipt as JSON"`
	IndexBaseURL string        `long:"index-base-url" description:"Common Crawl index server root" default:"https://index.commoncrawl.org"`
	Calibration  string        `long:"calibration" description:"YAML calibration file replacing the built-in one"`
	Timeout      time.Duration `long:"timeout" description:"Override the index fan-out deadline"`
	Verbose      bool          `short:"v" long:"verbose" description:"Log index lookups to stderr"`

	Args struct {
		Domain string `positional-arg-name:"domain" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "receipt:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	key, err := domain.ParseKey(opts.Args.Domain)
	if err != nil {
		return err
	}
	cal, err := config.LoadCalibration(opts.Calibration)
	if err != nil {
		return err
	}
	cfg := estimate.ConfigFromCalibration(cal)
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	log := logger.Discard()
	if opts.Verbose {
		log = logger.NewWithWriter(os.Stderr, "debug", "text")
	}
	indexes := commoncrawl.NewSet(strings.TrimRight(opts.IndexBaseURL, "/"), cal.Index.IDs,
		commoncrawl.WithUserAgent(commoncrawl.DefaultUserAgent))
	estimator, err := estimate.New(indexes, cfg, estimate.WithLogger(log))
	if err != nil {
		return err
	}

	crawlers := catalog.FromCalibration(cal.Crawlers)
	r := receipt.Compose(key, estimator.Estimate(ctx, key), crawlers.All(), receipt.PricingFromCalibration(cal.Pricing))
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	_, err = fmt.Fprintln(out, printReceipt(r, time.Now()))
	return err
}
