package imaging

import (
	"fmt"
	"os"
	"path/filepath"

	"blogdl/pkg/logger"
	"blogdl/pkg/models"
)

// Writer persists downloaded images under the output naming scheme
// <year>-<month>-<postid>-<subindex>.<ext>, zero-padded. An existing file
// of the same name is silently overwritten, which makes re-runs
// deterministic.
type Writer struct {
	dir    string
	logger logger.Logger
}

// NewWriter creates a writer rooted at dir, creating it if absent.
func NewWriter(dir string, log logger.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Writer{
		dir:    dir,
		logger: log,
	}, nil
}

// FileName computes the output filename for one image of a post.
func FileName(item models.DownloadItem, paddedID string, subIndex int, ext string) string {
	return fmt.Sprintf("%04d-%02d-%s-%04d%s", item.Year, item.Month, paddedID, subIndex, ext)
}

// Save writes image data under the given name, replacing any previous file.
// The write goes through a temp file and rename so a crash never leaves a
// half-written image.
func (w *Writer) Save(name string, data []byte) error {
	target := filepath.Join(w.dir, name)
	tempFile := target + ".tmp"

	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename image file: %w", err)
	}

	w.logger.DebugWithFields("image written", map[string]interface{}{
		"path": target,
		"size": len(data),
	})

	return nil
}

// Dir returns the output directory path
func (w *Writer) Dir() string {
	return w.dir
}
