package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogdl/pkg/logger"
)

// Store is a flat-file cache mapping request URLs to previously fetched
// blobs. A cache hit is returned unconditionally; there is no freshness
// check and no eviction, the operator manages the directory by hand.
type Store struct {
	dir    string
	logger logger.Logger
}

// NewStore creates a cache store rooted at dir, creating it if absent.
func NewStore(dir string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Store{
		dir:    dir,
		logger: log,
	}, nil
}

// PageKey derives the cache filename for an HTML page. Page URLs are few
// and human-readable, so the sanitized URL itself is the key.
func PageKey(url string) string {
	sanitized := strings.NewReplacer(":", "_", "/", "_").Replace(url)
	return sanitized + ".html"
}

// ImageKey derives the cache filename for an image. Image URLs are long and
// arbitrary, so the key is a content hash of the URL.
func ImageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:]) + ".bin"
}

// Page returns the cached text for url, fetching and persisting it on a
// miss. With bypass set, the cache is not consulted but the fresh result is
// still written through.
func (s *Store) Page(url string, fetch func(string) (string, error), bypass bool) (string, error) {
	path := filepath.Join(s.dir, PageKey(url))

	if !bypass {
		if data, err := os.ReadFile(path); err == nil {
			s.logger.DebugWithFields("page cache hit", map[string]interface{}{
				"url":  url,
				"path": path,
			})
			return string(data), nil
		}
	}

	s.logger.DebugWithFields("fetching page", map[string]interface{}{
		"url":    url,
		"bypass": bypass,
	})

	text, err := fetch(url)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write page cache entry: %w", err)
	}

	return text, nil
}

// Image returns the cached bytes for url, fetching and persisting them on a
// miss.
func (s *Store) Image(url string, fetch func(string) ([]byte, error)) ([]byte, error) {
	path := filepath.Join(s.dir, ImageKey(url))

	if data, err := os.ReadFile(path); err == nil {
		s.logger.DebugWithFields("image cache hit", map[string]interface{}{
			"url":  url,
			"path": path,
		})
		return data, nil
	}

	s.logger.DebugWithFields("fetching image", map[string]interface{}{
		"url": url,
	})

	data, err := fetch(url)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image cache entry: %w", err)
	}

	return data, nil
}

// Dir returns the cache directory path
func (s *Store) Dir() string {
	return s.dir
}
