package imaging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"blogdl/pkg/logger"
	"blogdl/pkg/models"
)

func TestFileName(t *testing.T) {
	item := models.DownloadItem{Year: 2023, Month: 10}

	name := FileName(item, "0000000042", 0, ".png")
	if name != "2023-10-0000000042-0000.png" {
		t.Errorf("Unexpected file name: %s", name)
	}

	name = FileName(item, "0000000042", 1, ".jpg")
	if name != "2023-10-0000000042-0001.jpg" {
		t.Errorf("Unexpected file name: %s", name)
	}

	// Single-digit month is zero-padded.
	name = FileName(models.DownloadItem{Year: 2011, Month: 4}, "0000000007", 12, ".gif")
	if name != "2011-04-0000000007-0012.gif" {
		t.Errorf("Unexpected file name: %s", name)
	}
}

func TestWriterSave(t *testing.T) {
	tempDir := t.TempDir()
	writer, err := NewWriter(tempDir, logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	data := []byte("image bytes")
	if err := writer.Save("2023-10-0000000042-0000.png", data); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(tempDir, "2023-10-0000000042-0000.png"))
	if err != nil {
		t.Fatalf("Failed to read saved image: %v", err)
	}
	if !bytes.Equal(saved, data) {
		t.Error("Saved image content does not match")
	}

	// No temp file left behind.
	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 1 {
		t.Errorf("Expected exactly 1 file in output directory, found %d", len(entries))
	}
}

func TestWriterSaveOverwrites(t *testing.T) {
	tempDir := t.TempDir()
	writer, err := NewWriter(tempDir, logger.NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	if err := writer.Save("out.png", []byte("first")); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}
	if err := writer.Save("out.png", []byte("second")); err != nil {
		t.Fatalf("Failed to overwrite image: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(tempDir, "out.png"))
	if err != nil {
		t.Fatalf("Failed to read saved image: %v", err)
	}
	if string(saved) != "second" {
		t.Errorf("Expected overwritten content, got %q", string(saved))
	}
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	if _, err := NewWriter(dir, logger.NewTestLogger()); err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected output directory to be created: %v", err)
	}
}
