// Package output handles file naming and writing for pipeline outputs.
// All paths given to a Writer are relative to its root directory.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/studyharvest/core/render"
)

// Writer reads and writes files below a root directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns the absolute location of rel.
func (w *Writer) Path(rel string) string {
	return filepath.Join(w.OutputDir, filepath.FromSlash(rel))
}

// Exists reports whether rel already exists.
func (w *Writer) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// WriteFile writes data to rel, creating parent directories.
func (w *Writer) WriteFile(rel string, data []byte) (string, error) {
	fullPath := w.Path(rel)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// WriteJSON renders v as indented JSON and writes it to rel.
func (w *Writer) WriteJSON(rel string, v any) (string, error) {
	data, err := render.JSON(v)
	if err != nil {
		return "", err
	}
	return w.WriteFile(rel, data)
}

// ReadJSON decodes the JSON file at rel into v.
func (w *Writer) ReadJSON(rel string, v any) error {
	data, err := os.ReadFile(w.Path(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found: %w", rel, err)
		}
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", rel, err)
	}
	return nil
}
