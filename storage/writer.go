package storage

import (
	"fmt"
	"path/filepath"

	"github.com/FlorianRuen/sclng-languages-card/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type DocumentWriter interface {
	Write(path string, content []byte) (string, error)
}

type documentWriter struct {
	fs afero.Fs
}

// NewDocumentWriter writes documents on fs, parent directories are created on write
// use afero.NewOsFs() for the real disk and afero.NewMemMapFs() in tests
func NewDocumentWriter(fs afero.Fs) DocumentWriter {
	return documentWriter{
		fs: fs,
	}
}

// Write replaces any previous file at path and returns it
func (w documentWriter) Write(path string, content []byte) (string, error) {
	directory := filepath.Dir(path)

	if err := w.fs.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", model.ErrWrite, directory, err)
	}

	// write next to the target then rename, a failed run never leaves a truncated card behind
	tmp := path + ".tmp"

	if err := afero.WriteFile(w.fs, tmp, content, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", model.ErrWrite, tmp, err)
	}

	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return "", fmt.Errorf("%w: rename %s: %v", model.ErrWrite, path, err)
	}

	log.WithFields(log.Fields{
		"path":  path,
		"bytes": len(content),
	}).Debug("document written")

	return path, nil
}
