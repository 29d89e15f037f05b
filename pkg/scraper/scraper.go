package scraper

import (
	"strings"

	"blogdl/pkg/blog"
	"blogdl/pkg/cache"
	"blogdl/pkg/config"
	"blogdl/pkg/imaging"
	"blogdl/pkg/logger"
	"blogdl/pkg/models"
	"blogdl/pkg/parser"
	"blogdl/pkg/ratelimit"
)

// Scraper orchestrates the archive-to-post-to-image traversal
type Scraper struct {
	fetcher Fetcher
	cache   *cache.Store
	writer  *imaging.Writer
	config  *config.Config
	logger  logger.Logger
}

// New creates a Scraper with the real HTTP client wired in.
func New(cfg *config.Config, log logger.Logger) (*Scraper, error) {
	limiter := ratelimit.NewFixedDelay(cfg.Fetch.Delay)
	client := blog.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, limiter, log)

	return NewWithFetcher(cfg, client, log)
}

// NewWithFetcher creates a Scraper around an arbitrary Fetcher. Tests use
// this to run the full traversal without touching the network.
func NewWithFetcher(cfg *config.Config, fetcher Fetcher, log logger.Logger) (*Scraper, error) {
	store, err := cache.NewStore(cfg.Cache.Directory, log)
	if err != nil {
		return nil, err
	}

	writer, err := imaging.NewWriter(cfg.Output.Directory, log)
	if err != nil {
		return nil, err
	}

	return &Scraper{
		fetcher: fetcher,
		cache:   store,
		writer:  writer,
		config:  cfg,
		logger:  log,
	}, nil
}

// Run performs one full crawl pass. Any fetch or structural parsing failure
// aborts immediately; the caller maps the error to a non-zero exit.
func (s *Scraper) Run() error {
	rootURL := s.config.Blog.RootURL

	s.logger.InfoWithFields("starting crawl", map[string]interface{}{
		"root_url": rootURL,
	})

	rootHTML, err := s.cache.Page(rootURL, s.fetcher.FetchPage, false)
	if err != nil {
		return err
	}

	items, err := parser.ExtractArchiveItems(rootHTML)
	if err != nil {
		return err
	}

	s.logger.InfoWithFields("archive items discovered", map[string]interface{}{
		"count": len(items),
	})

	return s.processItems(items)
}

// processItems walks the archive chronologically. Every item but the last
// is served from the cache; the last one is the most recent month, whose
// listing page is re-fetched to catch posts published since the previous
// run.
func (s *Scraper) processItems(items []models.DownloadItem) error {
	if len(items) == 0 {
		return nil
	}

	last := items[len(items)-1]

	for _, item := range items[:len(items)-1] {
		if err := s.processItem(item, false); err != nil {
			return err
		}
	}

	return s.processItem(last, true)
}

func (s *Scraper) processItem(item models.DownloadItem, refresh bool) error {
	s.logger.DebugWithFields("processing archive item", map[string]interface{}{
		"year":    item.Year,
		"month":   item.Month,
		"href":    item.Href,
		"refresh": refresh,
	})

	html, err := s.cache.Page(item.Href, s.fetcher.FetchPage, refresh)
	if err != nil {
		return err
	}

	posts, err := parser.ExtractPosts(html)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if err := s.processPost(item, post); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scraper) processPost(item models.DownloadItem, post models.Post) error {
	paddedID, err := post.PaddedID()
	if err != nil {
		return err
	}

	s.logger.DebugWithFields("processing post", map[string]interface{}{
		"post_id":   post.ID,
		"padded_id": paddedID,
		"href":      post.Href,
	})

	html, err := s.cache.Page(post.Href, s.fetcher.FetchPage, false)
	if err != nil {
		return err
	}

	sources, err := parser.ExtractImageSources(html)
	if err != nil {
		return err
	}

	subIndex := 0
	for _, source := range sources {
		if s.filtered(source) {
			s.logger.DebugWithFields("image filtered by prefix", map[string]interface{}{
				"source": source,
				"post":   post.Href,
			})
			continue
		}

		if !s.allowed(source) {
			s.logger.InfoWithFields("skipping image from unknown source", map[string]interface{}{
				"source": source,
				"post":   post.Href,
			})
			continue
		}

		data, err := s.cache.Image(source, s.fetcher.FetchBytes)
		if err != nil {
			return err
		}

		ext := imaging.DetectExtension(data, source)
		if ext == imaging.DefaultExtension {
			s.logger.DebugWithFields("image format unrecognized", map[string]interface{}{
				"source": source,
				"post":   post.Href,
			})
		}

		name := imaging.FileName(item, paddedID, subIndex, ext)
		subIndex++

		if err := s.writer.Save(name, data); err != nil {
			return err
		}
	}

	return nil
}

// allowed reports whether the image URL matches the content-source
// allow-list.
func (s *Scraper) allowed(source string) bool {
	for _, domain := range s.config.Blog.ContentSources {
		if strings.Contains(source, domain) {
			return true
		}
	}
	return false
}

// filtered reports whether the image URL matches an explicit exclusion
// prefix. The filter list is empty by default.
func (s *Scraper) filtered(source string) bool {
	for _, prefix := range s.config.Blog.FilterPrefixes {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}
