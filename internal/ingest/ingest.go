// Package ingest extracts plain text from uploaded charter party documents.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/smartcp/internal/model"
)

// DefaultMaxDocumentBytes is the default per-document size limit.
const DefaultMaxDocumentBytes = 16 << 20

var (
	// ErrUnsupportedType is returned for files other than .txt, .docx and .pdf.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrDocumentTooLarge is returned when a document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document too large")
	// ErrInvalidEncoding is returned for text files that are not UTF-8.
	ErrInvalidEncoding = errors.New("document is not valid UTF-8")
)

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".txt", ".docx", ".pdf"}
}

// ReadFile extracts the text of the file at path. maxBytes <= 0 disables the
// size limit.
func ReadFile(path string, maxBytes int64) (string, error) {
	if err := CheckType(path); err != nil {
		return "", err
	}

	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(filepath.Base(path), f, maxBytes)
}

// Read extracts the text of a document named name from r. The extension of
// name selects the format.
func Read(name string, r io.Reader, maxBytes int64) (string, error) {
	if err := CheckType(name); err != nil {
		return "", err
	}

	data, err := readLimited(r, maxBytes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s: %w", name, ErrInvalidEncoding)
		}
		text = string(bytes.TrimPrefix(data, []byte("\ufeff")))
	case ".docx":
		text, err = extractDocx(data)
	case ".pdf":
		text, err = extractPDF(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", name, err)
	}

	return text, nil
}

// LoadDocumentSet reads every role's file into a DocumentSet. Unsupported
// types are rejected before any file is read.
func LoadDocumentSet(paths map[string]string, maxBytes int64) (model.DocumentSet, error) {
	for role, path := range paths {
		if err := CheckType(path); err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}
	}

	docs := make(model.DocumentSet, len(paths))
	for role, path := range paths {
		text, err := ReadFile(path, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}
		docs[role] = text
	}
	return docs, nil
}

// CheckType reports ErrUnsupportedType unless name has a supported extension.
func CheckType(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions() {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedType, name, strings.Join(SupportedExtensions(), ", "))
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrDocumentTooLarge, maxBytes)
	}
	return data, nil
}
