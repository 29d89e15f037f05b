package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blogdl/pkg/logger"
)

func TestPageKey(t *testing.T) {
	key := PageKey("https://example.org/2023/10/")
	want := "https___example.org_2023_10_.html"
	if key != want {
		t.Errorf("Expected page key %q, got %q", want, key)
	}
}

func TestImageKey(t *testing.T) {
	url := "https://cdn.example.org/some/very/long/image/path.png?size=large"
	sum := sha256.Sum256([]byte(url))
	want := hex.EncodeToString(sum[:]) + ".bin"

	if key := ImageKey(url); key != want {
		t.Errorf("Expected image key %q, got %q", want, key)
	}
}

func TestPageMissThenHit(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStore(tempDir, logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	fetches := 0
	fetch := func(url string) (string, error) {
		fetches++
		return "<html>page</html>", nil
	}

	// Miss fetches and persists.
	text, err := store.Page("https://example.org/", fetch, false)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}
	if text != "<html>page</html>" {
		t.Errorf("Unexpected page text: %q", text)
	}
	if fetches != 1 {
		t.Errorf("Expected 1 fetch, got %d", fetches)
	}

	cached := filepath.Join(tempDir, PageKey("https://example.org/"))
	if _, err := os.Stat(cached); err != nil {
		t.Errorf("Expected cache file to exist: %v", err)
	}

	// Hit reads the file without fetching.
	text, err = store.Page("https://example.org/", fetch, false)
	if err != nil {
		t.Fatalf("Failed to get cached page: %v", err)
	}
	if text != "<html>page</html>" {
		t.Errorf("Unexpected cached page text: %q", text)
	}
	if fetches != 1 {
		t.Errorf("Expected cache hit to perform no fetch, got %d fetches", fetches)
	}
}

func TestPageBypass(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStore(tempDir, logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	responses := []string{"first", "second"}
	fetches := 0
	fetch := func(url string) (string, error) {
		text := responses[fetches]
		fetches++
		return text, nil
	}

	if _, err := store.Page("https://example.org/2023/10/", fetch, false); err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	// Bypass ignores the cached entry but writes the fresh result through.
	text, err := store.Page("https://example.org/2023/10/", fetch, true)
	if err != nil {
		t.Fatalf("Failed to refresh page: %v", err)
	}
	if text != "second" {
		t.Errorf("Expected refreshed text, got %q", text)
	}
	if fetches != 2 {
		t.Errorf("Expected 2 fetches, got %d", fetches)
	}

	cached := filepath.Join(tempDir, PageKey("https://example.org/2023/10/"))
	data, err := os.ReadFile(cached)
	if err != nil {
		t.Fatalf("Failed to read cache file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected cache file to hold refreshed text, got %q", string(data))
	}
}

func TestPageFetchError(t *testing.T) {
	store, err := NewStore(t.TempDir(), logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	fetchErr := errors.New("boom")
	_, err = store.Page("https://example.org/", func(string) (string, error) {
		return "", fetchErr
	}, false)
	if !errors.Is(err, fetchErr) {
		t.Errorf("Expected fetch error to propagate, got %v", err)
	}

	// Nothing persisted on failure.
	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 0 {
		t.Errorf("Expected empty cache after failed fetch, found %d entries", len(entries))
	}
}

func TestImageMissThenHit(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStore(tempDir, logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	imageData := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	fetches := 0
	fetch := func(url string) ([]byte, error) {
		fetches++
		return imageData, nil
	}

	url := "https://cdn.example.org/image"
	data, err := store.Image(url, fetch)
	if err != nil {
		t.Fatalf("Failed to get image: %v", err)
	}
	if !bytes.Equal(data, imageData) {
		t.Error("Image data does not match fetched data")
	}

	data, err = store.Image(url, fetch)
	if err != nil {
		t.Fatalf("Failed to get cached image: %v", err)
	}
	if !bytes.Equal(data, imageData) {
		t.Error("Cached image data does not match")
	}
	if fetches != 1 {
		t.Errorf("Expected cache hit to perform no fetch, got %d fetches", fetches)
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	if _, err := NewStore(dir, logger.NewTestLogger()); err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected cache directory to be created: %v", err)
	}
}
