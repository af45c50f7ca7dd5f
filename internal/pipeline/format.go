package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for format names and file extensions that
// have no reader or writer.
var ErrUnknownFormat = errors.New("unknown row format")

// Format selects a row serialization.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatArrow Format = "arrow"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSONL, FormatArrow}
}

// ParseFormat resolves a case-insensitive format name. "json" and "ndjson"
// are accepted for JSON Lines, "ipc" and "arrows" for Arrow.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "jsonl", "json", "ndjson":
		return FormatJSONL, nil
	case "arrow", "arrows", "ipc":
		return FormatArrow, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat picks a format from a file name's extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}

	return ParseFormat(ext)
}
