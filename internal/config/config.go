// Package config holds the settings of a hashing job: the mapping, the
// digest and encoding, the row source and the fingerprint store.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"

	"row-hasher/internal/common"
	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
	"row-hasher/internal/engine"
	"row-hasher/internal/logging"
	"row-hasher/internal/normalize"
	"row-hasher/internal/pipeline"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all job settings.
type Config struct {
	// Mapping is the group definition, e.g. "full=first[UT],last[L]".
	Mapping              string           `yaml:"mapping"`
	Algorithm            string           `yaml:"algorithm"`
	Encoding             string           `yaml:"encoding"`
	CaseSensitive        bool             `yaml:"case_sensitive"`
	IgnoreMissingColumns bool             `yaml:"ignore_missing_columns"`
	Normalize            normalize.Config `yaml:",inline"`

	// Format is the row format of input and output: csv, jsonl or arrow.
	Format string `yaml:"format"`
	// NullLiteral is the CSV cell text read and written as an absent value.
	NullLiteral string `yaml:"null_literal"`
	// Where is an optional expr-lang row filter.
	Where string `yaml:"where"`

	// StatePath is the fingerprint database. Empty disables change tracking.
	StatePath string `yaml:"state"`
	// KeyColumn identifies rows in the fingerprint database.
	KeyColumn string `yaml:"key"`

	LogLevel string `yaml:"log_level"`
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Algorithm: digest.MD5.String(),
		Encoding:  encode.Hex.String(),
		Normalize: normalize.DefaultConfig(),
		Format:    string(pipeline.FormatCSV),
		KeyColumn: "_line",
		LogLevel:  "info",
		Addr:      "127.0.0.1:8080",
	}
}

// DefaultStatePath returns the fingerprint database under the XDG data home.
func DefaultStatePath() string {
	return filepath.Join(xdg.DataHome, "row-hasher", "state.db")
}

// ApplyEnv overlays ROWHASH_* environment variables.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"ROWHASH_MAPPING":   &c.Mapping,
		"ROWHASH_ALGORITHM": &c.Algorithm,
		"ROWHASH_ENCODING":  &c.Encoding,
		"ROWHASH_FORMAT":    &c.Format,
		"ROWHASH_STATE":     &c.StatePath,
		"ROWHASH_LOG_LEVEL": &c.LogLevel,
		"ROWHASH_ADDR":      &c.Addr,
	}

	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("ROWHASH_CASE_SENSITIVE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: ROWHASH_CASE_SENSITIVE: %w", ErrInvalidConfig, err)
		}

		c.CaseSensitive = b
	}

	return nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := c.HashAlgorithm(); err != nil {
		return err
	}

	if _, err := c.OutputEncoding(); err != nil {
		return err
	}

	if _, err := pipeline.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// HashAlgorithm parses Algorithm. Unlike digest.ParseAlgorithm it rejects
// unknown names.
func (c *Config) HashAlgorithm() (digest.Algorithm, error) {
	alg, ok := digest.LookupAlgorithm(c.Algorithm)
	if !ok {
		names := make([]string, 0, len(digest.Algorithms()))
		for _, a := range digest.Algorithms() {
			names = append(names, a.Text())
		}

		return alg, fmt.Errorf("%w: unknown algorithm %q, expected one of %s",
			ErrInvalidConfig, c.Algorithm, common.QuoteList(names))
	}

	return alg, nil
}

// OutputEncoding parses Encoding, rejecting unknown names.
func (c *Config) OutputEncoding() (encode.Encoding, error) {
	enc, ok := encode.LookupEncoding(c.Encoding)
	if !ok {
		names := make([]string, 0, len(encode.Encodings()))
		for _, e := range encode.Encodings() {
			names = append(names, e.String())
		}

		return enc, fmt.Errorf("%w: unknown encoding %q, expected one of %s",
			ErrInvalidConfig, c.Encoding, common.QuoteList(names))
	}

	return enc, nil
}

// EngineOptions returns the engine settings of the job.
func (c *Config) EngineOptions(logger *slog.Logger) engine.Options {
	return engine.Options{
		Normalize:            c.Normalize,
		Mapping:              c.Mapping,
		CaseSensitive:        c.CaseSensitive,
		IgnoreMissingColumns: c.IgnoreMissingColumns,
		Logger:               logger,
	}
}
