package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/pipeline"
	"github.com/lexdrift/lexdrift/internal/worker"
)

var (
	outJSON       string
	outMD         string
	onlyFile      string
	concurrency   int
	verifyTimeout time.Duration
	httpTimeout   time.Duration
	userAgent     string
	maxBytes      int64
	requestsPerS  float64
	noCache       bool
	cacheDir      string
	noFooter      bool
	insecureTLS   bool
	noRobots      bool
	noFetch       bool
	httpProxy     string
	httpsProxy    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <local-feed> <indexed-feed>",
	Short: "Compare a scraped feed against the indexed copy and explain drift",
	Long: `Verify pairs every document in the freshly scraped feed with its
counterpart in the search-index export, diffs their normalized text,
corroborates disputed lines against the live page, and classifies each
divergence:
- website_changed:  the live page agrees with the scrape, the index is stale
- scraper_issue:    the live page agrees with the index, the scrape is broken
- missing_in_index: the document never reached the index
- mixed_or_inconclusive: the evidence does not cleanly support either side

Each drifted document also gets an impact score from the procedural
keyword families its changed lines touch.

Example:
  lexdrift verify scraped.json indexed.json
  lexdrift verify scraped.json indexed.json --json drift.json --md drift.md
  lexdrift verify scraped.json indexed.json --only tracked.txt --concurrency 4`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "drift.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().StringVar(&onlyFile, "only", "", "file listing source files to verify (one per line)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Concurrency flags
	verifyCmd.Flags().IntVar(&concurrency, "concurrency", 8, "number of concurrent workers")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 10*time.Minute, "total timeout for the run")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 20*time.Second, "timeout per live fetch")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "lexdrift/0.1 (+https://github.com/lexdrift/lexdrift)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	verifyCmd.Flags().Float64Var(&requestsPerS, "rps", 2.0, "max requests per second per host")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetches)")
	verifyCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (memory-only when empty)")
	verifyCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	verifyCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	verifyCmd.Flags().BoolVar(&noFetch, "no-fetch", false, "offline mode: skip live corroboration entirely")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	localPath, indexedPath := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Local feed:   %s\n", localPath)
		fmt.Fprintf(os.Stderr, "Indexed feed: %s\n", indexedPath)
		fmt.Fprintf(os.Stderr, "Workers:      %d\n", concurrency)
		fmt.Fprintf(os.Stderr, "Cache:        %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = httpTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.DisableLiveFetch = noFetch
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.RateLimiting.RequestsPerSecond = requestsPerS
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	var only []string
	if onlyFile != "" {
		var err error
		only, err = worker.ReadListFile(onlyFile)
		if err != nil {
			return fmt.Errorf("read only list: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Restricting to %d source files\n\n", len(only))
		}
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.Verify(ctx, localPath, indexedPath, only)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verified %d document pairs\n\n", report.Summary.Total)
	}

	if err := p.RenderDriftReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
