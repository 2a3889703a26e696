package web

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalCardStore writes result cards to a directory served as static files.
// The hosted original pushed these to S3; a self-contained deployment keeps
// them on disk under the same /cards/ URL space.
type LocalCardStore struct {
	Dir     string
	BaseURL string
}

func NewLocalCardStore(dir, baseURL string) *LocalCardStore {
	return &LocalCardStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalCardStore) SaveCard(filename, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create cards directory: %w", err)
	}
	if filepath.Ext(filename) == "" {
		ext := strings.TrimPrefix(contentType, "image/")
		filename = filename + "." + ext
	}
	dest := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("write card: %w", err)
	}
	return s.BaseURL + "/cards/" + filename, nil
}
