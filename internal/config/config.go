// Package config loads the optional recipegen.toml CLI configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/recipegen/internal/messages"
	"github.com/conn-castle/recipegen/internal/schema"
)

// DefaultDiffLines caps the overwrite diff preview when the config does
// not say otherwise.
const DefaultDiffLines = 40

// FileName is the config file looked up in the working directory and
// under the user config directory.
const FileName = "recipegen.toml"

// Config holds CLI-level settings. The zero value is usable; Default
// fills in the package manager and diff cap.
type Config struct {
	// PkgManager is the package manager used when --pkg-manager is not
	// passed.
	PkgManager string `toml:"pkg_manager"`
	// TemplateDirs are extra directories of template YAML files loaded
	// after the shipped templates.
	TemplateDirs []string `toml:"template_dirs"`
	// DiffLines caps the per-file diff preview shown when overwriting.
	DiffLines int `toml:"diff_lines"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{PkgManager: schema.Apt, DiffLines: DefaultDiffLines}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates config TOML data; source is used in error
// messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigDecodeFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf(messages.ConfigUnknownKeyFmt, source, err)
	}
	if err := cfg.validate(source); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStrict re-decodes with unknown-field rejection, catching keys
// toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(&cfg)
}

func (c *Config) validate(source string) error {
	if c.PkgManager != "" && !schema.KnownPackageManager(c.PkgManager) {
		return fmt.Errorf(messages.ConfigPkgManagerFmt, source, c.PkgManager)
	}
	if c.DiffLines <= 0 {
		return fmt.Errorf(messages.ConfigDiffLinesFmt, source, c.DiffLines)
	}
	for _, dir := range c.TemplateDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf(messages.ConfigTemplateDir, source)
		}
	}
	return nil
}

// LoadDefault looks for recipegen.toml in the working directory, then
// under ~/.config/recipegen/. A missing file yields Default.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(FileName); err == nil {
		return Load(FileName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigHomeDirFmt, err)
	}
	path := filepath.Join(home, ".config", "recipegen", FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	cfg := Default()
	return &cfg, nil
}
