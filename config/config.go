// Package config provides the genconstants configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

const (
	defaultInput      = "constants.rs"
	defaultOutput     = "constants_gen.rs"
	defaultSourceType = "FieldElement51"
	defaultTargetType = "Engine25519"
	defaultLogLevel   = "NOTICE"
)

// Convert is the source converter configuration.
type Convert struct {
	// Input is the Rust source to convert, "-" for stdin.
	Input string

	// Output is where the converted source is written, "-" for stdout.
	Output string

	// SourceType is the radix 2^51 field element type name to replace.
	SourceType string

	// TargetType is the byte array backed type name written instead.
	TargetType string
}

func (cCfg *Convert) applyDefaults() {
	if cCfg.Input == "" {
		cCfg.Input = defaultInput
	}
	if cCfg.Output == "" {
		cCfg.Output = defaultOutput
	}
	if cCfg.SourceType == "" {
		cCfg.SourceType = defaultSourceType
	}
	if cCfg.TargetType == "" {
		cCfg.TargetType = defaultTargetType
	}
}

func (cCfg *Convert) validate() error {
	if !isIdentifier(cCfg.SourceType) {
		return fmt.Errorf("config: Convert: SourceType '%v' is not a Rust identifier", cCfg.SourceType)
	}
	if !isIdentifier(cCfg.TargetType) {
		return fmt.Errorf("config: Convert: TargetType '%v' is not a Rust identifier", cCfg.TargetType)
	}
	if cCfg.SourceType == cCfg.TargetType {
		return errors.New("config: Convert: SourceType and TargetType are the same")
	}
	if cCfg.Input != "-" && samePath(cCfg.Input, cCfg.Output) {
		return errors.New("config: Convert: Input and Output are the same file")
	}
	return nil
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl // Force uppercase.
	return nil
}

// Config is the top level genconstants configuration.
type Config struct {
	Convert *Convert
	Logging *Logging
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic(err)
	}
	return cfg
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration.  Most people should call one of the Load variants
// instead.
func (cfg *Config) FixupAndValidate() error {
	// Both sections are optional.
	if cfg.Convert == nil {
		cfg.Convert = &Convert{}
	}
	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}

	cfg.Convert.applyDefaults()
	if err := cfg.Convert.validate(); err != nil {
		return err
	}
	return cfg.Logging.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return Load(b)
}

// samePath reports whether a and b name the same file, either as the same
// absolute path or, for existing files, through links.
func samePath(a, b string) bool {
	if absPath(a) == absPath(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
