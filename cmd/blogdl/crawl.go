package main

import (
	"os"

	"github.com/spf13/cobra"

	"blogdl/pkg/config"
	"blogdl/pkg/logger"
	"blogdl/pkg/scraper"
)

var (
	// Crawl command flags
	rootURL      string
	cacheDir     string
	outputDir    string
	fetchTimeout int
	fetchDelay   int
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the blog archive and download images",
	Long: `Crawl the blog's monthly archive pages, extract every post and
download the embedded images.

Pages are cached under the cache directory and reused on subsequent runs;
only the most recent archive month is re-fetched to detect newly published
posts. Images are written to the output directory named
<year>-<month>-<postid>-<subindex>.<ext>.

The crawl is all-or-nothing: any fetch failure or unexpected page structure
aborts the run with a non-zero exit code. Already-cached pages survive an
aborted run, so the next invocation resumes where the previous one stopped.`,
	Example: `  # Crawl with default settings
  blogdl crawl

  # Crawl a different blog into custom directories
  blogdl crawl --root-url https://example.org/ --cache-dir /tmp/cache --output /tmp/images

  # Be polite: wait two seconds between fetches
  blogdl crawl --delay 2`,
	Run: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVar(&rootURL, "root-url", "", "blog root URL carrying the archive widget")
	crawlCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the page/image cache (default: cache)")
	crawlCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for downloaded images (default: images)")
	crawlCmd.Flags().IntVar(&fetchTimeout, "timeout", 10, "fetch timeout in seconds")
	crawlCmd.Flags().IntVar(&fetchDelay, "delay", 0, "delay between fetches in seconds")
}

func runCrawl(cmd *cobra.Command, args []string) {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if rootURL != "" {
		flags["root-url"] = rootURL
	}
	if cacheDir != "" {
		flags["cache-dir"] = cacheDir
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if fetchTimeout != 10 {
		flags["timeout"] = fetchTimeout
	}
	if fetchDelay != 0 {
		flags["delay"] = fetchDelay
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		logger.WithError(err).Error("Failed to initialize logger")
		os.Exit(1)
	}
	log := logger.GetLogger()

	log.WithField("root_url", cfg.Blog.RootURL).Info("blog downloader starting")

	s, err := scraper.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize scraper")
		os.Exit(1)
	}

	if err := s.Run(); err != nil {
		log.WithError(err).Error("Crawl failed")
		os.Exit(1)
	}

	log.Info("Crawl completed successfully")
}

// Make crawl the default command when no subcommand is specified
func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			runCrawl(crawlCmd, args)
			return nil
		}
		return cmd.Help()
	}
	rootCmd.Args = cobra.ArbitraryArgs
}
