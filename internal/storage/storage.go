// Package storage persists uploaded media. The database keeps only relative
// references (e.g. "profile_pictures/ab12…f9.png"); this package owns the
// bytes behind them.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"helenite/internal/models"
)

const maxUploadSizeBytes = 10 * 1024 * 1024

// Storage saves and removes media files addressed by relative reference.
type Storage interface {
	Save(category, filename string, content []byte) (string, error)
	Remove(reference string) error
	Path(reference string) string
}

type localStorage struct {
	baseDir string
}

// NewLocalStorage returns a Storage rooted at baseDir.
func NewLocalStorage(baseDir string) Storage {
	return &localStorage{baseDir: baseDir}
}

func isAllowedImageMIME(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}
	return false
}

// Save validates the upload, content-addresses it under category and returns
// the relative reference to store. Saving identical bytes twice yields the
// same reference.
func (s *localStorage) Save(category, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	sum := sha256.Sum256(content)
	reference := filepath.ToSlash(filepath.Join(category, hex.EncodeToString(sum[:])+ext))

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(reference))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return reference, nil
}

// Remove deletes the file behind a reference. The default profile picture is
// shared and never removed.
func (s *localStorage) Remove(reference string) error {
	if reference == "" || reference == models.DefaultPicture {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(reference)))
	if err != nil && !os.IsNotExist(err) {
		return models.NewInternalError(err)
	}
	return nil
}

// Path returns the absolute filesystem path behind a reference.
func (s *localStorage) Path(reference string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(reference))
}
