package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spherical/pdf-splitter/internal/domain"
)

const largeFileSize = 100 * 1024 * 1024 // 100MB

// Validator provides input validation for candidate documents.
type Validator struct {
	extensions []string
	logger     zerolog.Logger
}

// NewValidator creates a validator accepting the given extensions
// (lowercase, dot-prefixed).
func NewValidator(extensions []string, logger zerolog.Logger) *Validator {
	return &Validator{extensions: extensions, logger: logger}
}

// ValidatePath checks that path points to a readable document with a
// recognized extension.
func (v *Validator) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	if !v.HasRecognizedExtension(path) {
		return domain.ValidationError(
			fmt.Sprintf("file has unrecognized extension %s", filepath.Ext(path)), nil)
	}

	if info.Size() > largeFileSize {
		v.logger.Warn().
			Str("path", path).
			Int64("size_mb", info.Size()/(1024*1024)).
			Msg("Document is very large, processing may take a while")
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}

// HasRecognizedExtension reports whether path carries one of the
// configured extensions, case-insensitively.
func (v *Validator) HasRecognizedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range v.extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
