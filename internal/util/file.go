package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes data to dir/name, creating dir first.
func WriteFile(dir, name string, data []byte) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug replaces every whitespace run with an underscore, or returns fallback
// when s is blank.
func Slug(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return whitespace.ReplaceAllString(s, "_")
}
