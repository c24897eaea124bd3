package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/doctext/doctext/docstring"
	"gopkg.in/yaml.v3"
)

// AppName is the application name used for the config directory.
const AppName = "doctext"

// FileConfig holds CLI defaults read from the YAML config file. Pointer
// fields distinguish "unset" from an explicit false/zero, so the file only
// overrides what it mentions.
type FileConfig struct {
	IndentEmptyLines *bool   `yaml:"indent_empty_lines,omitempty"`
	MinimizeIndents  *bool   `yaml:"minimize_indents,omitempty"`
	ListWithIndent   *bool   `yaml:"list_with_indent,omitempty"`
	ListNoIndent     *bool   `yaml:"list_no_indent,omitempty"`
	TabSize          *int    `yaml:"tab_size,omitempty"`
	InBullets        *string `yaml:"in_bullets,omitempty"`
	OutBullets       *string `yaml:"out_bullets,omitempty"`
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}

// ReadFileConfig reads the config file from the default location. A missing
// file is not an error.
func ReadFileConfig() (*FileConfig, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFileConfig(path)
}

// LoadFileConfig loads config from the given path.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Apply overlays the file's settings onto a base set of options.
func (f *FileConfig) Apply(opts docstring.Options) docstring.Options {
	if f.IndentEmptyLines != nil {
		opts.IndentEmptyLines = *f.IndentEmptyLines
	}
	if f.MinimizeIndents != nil {
		opts.MinimizeIndents = *f.MinimizeIndents
	}
	if f.ListWithIndent != nil {
		opts.ListWithIndent = *f.ListWithIndent
	}
	if f.ListNoIndent != nil {
		opts.ListNoIndent = *f.ListNoIndent
	}
	if f.TabSize != nil {
		opts.TabSize = *f.TabSize
	}
	if f.InBullets != nil {
		opts.InBullets = *f.InBullets
	}
	if f.OutBullets != nil {
		opts.OutBullets = *f.OutBullets
	}
	return opts
}
