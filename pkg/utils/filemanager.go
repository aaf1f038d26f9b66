// =============================================================================
// OCR Giro Codec - File Manager
// =============================================================================
//
// This module handles reading and writing OCR files on disk. The codec
// core works on plain strings; the wire encoding concern lives here: OCR
// files are ISO-8859-1 (the format predates UTF-8, and payer names can
// carry Norwegian characters), so files are transcoded on the way in and
// out.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// ReadOCRFile reads an OCR file from disk and decodes it from ISO-8859-1.
func ReadOCRFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as ISO-8859-1: %w", path, err)
	}
	return string(decoded), nil
}

// WriteOCRFile encodes OCR file contents to ISO-8859-1 and writes them to
// disk. Characters outside the charset are an error rather than silently
// replaced; Nets rejects files with substitution characters.
func WriteOCRFile(path, contents string) error {
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(contents))
	if err != nil {
		return fmt.Errorf("failed to encode %s as ISO-8859-1: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ArchiveFile moves a processed file into the archive directory. A short
// random suffix keeps repeated runs over same-named files from colliding.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	suffix := uuid.NewString()[:8]

	target := filepath.Join(archiveDir, fmt.Sprintf("%s_%s%s", stem, suffix, ext))
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return target, nil
}

// BaseName returns a file's base name with the extension stripped. Used
// for report naming.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
