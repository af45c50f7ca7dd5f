package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"row-hasher/internal/config"
)

// jobFlags are the settings shared by commands that build a job
// configuration. Precedence: defaults, --config file, ROWHASH_* variables,
// then flags given on the command line.
type jobFlags struct {
	configPath      string
	mapping         string
	algorithm       string
	encoding        string
	caseSensitive   bool
	ignoreMissing   bool
	nullPlaceholder string
	format          string
	nullLiteral     string
	where           string
	state           string
	key             string
	logLevel        string
	addr            string
}

func (f *jobFlags) addConfig(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML job file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

func (f *jobFlags) addMapping(fs *pflag.FlagSet) {
	fs.StringVarP(&f.mapping, "mapping", "m", "", `group mapping, e.g. "full=first[UT],last[L]"`)
	fs.BoolVar(&f.caseSensitive, "case-sensitive", false, "match group and column names exactly")
}

func (f *jobFlags) addHashing(fs *pflag.FlagSet) {
	fs.StringVarP(&f.algorithm, "algorithm", "a", "", "digest algorithm (default MD5)")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "digest encoding: HEX, BASE64 or PLAIN (default HEX)")
	fs.BoolVar(&f.ignoreMissing, "ignore-missing", false, "skip unknown columns and groups instead of failing")
	fs.StringVar(&f.nullPlaceholder, "null-placeholder", "", "text hashed in place of absent values")
}

func (f *jobFlags) addPipeline(fs *pflag.FlagSet) {
	fs.StringVarP(&f.format, "format", "f", "", "row format: csv, jsonl or arrow (default from the input extension, else csv)")
	fs.StringVar(&f.nullLiteral, "null-literal", "", "CSV cell text that stands for an absent value")
	fs.StringVarP(&f.where, "where", "w", "", `row filter expression, e.g. 'tier == "gold"'`)
	fs.StringVar(&f.state, "state", "", "fingerprint database for change tracking (--state alone uses the XDG data directory)")
	fs.Lookup("state").NoOptDefVal = config.DefaultStatePath()
	fs.StringVar(&f.key, "key", "", `column identifying rows in the fingerprint database (default "_line")`)
}

func (f *jobFlags) addServer(fs *pflag.FlagSet) {
	fs.StringVar(&f.addr, "addr", "", "listen address (default 127.0.0.1:8080)")
}

// load builds the job configuration and validates it.
func (f *jobFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(f.configPath); err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	fs := cmd.Flags()

	strs := []struct {
		name string
		dst  *string
		val  string
	}{
		{"mapping", &cfg.Mapping, f.mapping},
		{"algorithm", &cfg.Algorithm, f.algorithm},
		{"encoding", &cfg.Encoding, f.encoding},
		{"null-placeholder", &cfg.Normalize.NullPlaceholder, f.nullPlaceholder},
		{"format", &cfg.Format, f.format},
		{"null-literal", &cfg.NullLiteral, f.nullLiteral},
		{"where", &cfg.Where, f.where},
		{"state", &cfg.StatePath, f.state},
		{"key", &cfg.KeyColumn, f.key},
		{"log-level", &cfg.LogLevel, f.logLevel},
		{"addr", &cfg.Addr, f.addr},
	}

	for _, s := range strs {
		if fs.Changed(s.name) {
			*s.dst = s.val
		}
	}

	if fs.Changed("case-sensitive") {
		cfg.CaseSensitive = f.caseSensitive
	}

	if fs.Changed("ignore-missing") {
		cfg.IgnoreMissingColumns = f.ignoreMissing
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
