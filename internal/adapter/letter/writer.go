package letter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidID is returned by Save for ids that cannot name a file inside the
// output directory.
var ErrInvalidID = errors.New("invalid attendee id")

// Writer saves rendered letters into an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for dir. The directory is created on first save.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// FileName returns the letter file name for an attendee id.
func FileName(id string) string {
	return "thanks_" + id + ".html"
}

// Save writes content to thanks_<id>.html, replacing any existing letter with the same id.
func (w *Writer) Save(id, content string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	path := filepath.Join(w.dir, FileName(id))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // letters are meant to be shared
		return "", fmt.Errorf("write letter %s: %w", path, err)
	}
	return path, nil
}

// checkID rejects ids that would place the letter outside the output directory.
func checkID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case strings.ContainsAny(id, `/\`) || strings.Contains(id, ".."):
		return fmt.Errorf("%w %q: contains a path separator or \"..\"", ErrInvalidID, id)
	}
	return nil
}
