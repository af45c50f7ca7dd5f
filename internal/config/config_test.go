package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "MD5", cfg.Algorithm)
	assert.Equal(t, "HEX", cfg.Encoding)
	assert.Equal(t, "csv", cfg.Format)
	assert.Empty(t, cfg.StatePath)
	assert.Empty(t, cfg.Normalize.NullPlaceholder)
}

func TestDefaultStatePath(t *testing.T) {
	p := DefaultStatePath()

	assert.True(t, filepath.IsAbs(p), p)
	assert.Equal(t, "state.db", filepath.Base(p))
	assert.Equal(t, "row-hasher", filepath.Base(filepath.Dir(p)))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	data := `mapping: "full=first[UT],last[L]"
algorithm: sha-256
encoding: base64
case_sensitive: true
null_placeholder: "<null>"
where: tier == "gold"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "full=first[UT],last[L]", cfg.Mapping)
	assert.True(t, cfg.CaseSensitive)
	assert.Equal(t, "<null>", cfg.Normalize.NullPlaceholder)
	assert.Equal(t, `tier == "gold"`, cfg.Where)
	assert.Equal(t, "csv", cfg.Format, "unset keys keep their defaults")

	alg, err := cfg.HashAlgorithm()
	require.NoError(t, err)
	assert.Equal(t, digest.SHA256, alg)

	enc, err := cfg.OutputEncoding()
	require.NoError(t, err)
	assert.Equal(t, encode.Base64, enc)

	opts := cfg.EngineOptions(nil)
	assert.Equal(t, cfg.Mapping, opts.Mapping)
	assert.Equal(t, "<null>", opts.Normalize.NullPlaceholder)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	_, err = Parse([]byte("mapping: a=b\nalgoritm: md5\n"))
	require.ErrorContains(t, err, "algoritm")

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mapping = "h=a;g=b[C]"
	cfg.Normalize.NullPlaceholder = "~"

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null_placeholder:")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ROWHASH_MAPPING", "h=id")
	t.Setenv("ROWHASH_ALGORITHM", "blake3")
	t.Setenv("ROWHASH_CASE_SENSITIVE", "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "h=id", cfg.Mapping)
	assert.True(t, cfg.CaseSensitive)

	alg, err := cfg.HashAlgorithm()
	require.NoError(t, err)
	assert.Equal(t, digest.BLAKE3, alg)

	t.Setenv("ROWHASH_CASE_SENSITIVE", "maybe")
	require.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"algorithm", func(c *Config) { c.Algorithm = "crc32" }, `unknown algorithm "crc32"`},
		{"encoding", func(c *Config) { c.Encoding = "base32" }, `unknown encoding "base32"`},
		{"format", func(c *Config) { c.Format = "xml" }, "xml"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
