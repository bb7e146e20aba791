// Package config loads vyc project files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v2"
)

// Names are the project file names looked up by Find, in order
var Names = []string{"vyc.yaml", "vyc.yml", "vyc.toml"}

// Config describes a project build
type Config struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"` // glob patterns or directories, relative to the file
	Emit    string   `yaml:"emit"`
	OutDir  string   `yaml:"out_dir"`
	Jobs    int      `yaml:"jobs"` // parallel compile units, 0 means one per CPU
}

// Default is the configuration used when no file is given
var Default = Config{
	Sources: []string{"*.vy"},
	Emit:    "tree",
	OutDir:  "build",
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load reads a project file. The format follows the file extension.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
		// Add file name to errors that have a line number.
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(path + ", " + err.Error())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.SetStrict(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", path, err)
		}
	default:
		err = fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first project file present in dir
func Find(dir string) (string, bool) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (c *Config) applyDefaults() {
	if len(c.Sources) == 0 {
		c.Sources = append([]string(nil), Default.Sources...)
	}
	if c.Emit == "" {
		c.Emit = Default.Emit
	}
	if c.OutDir == "" {
		c.OutDir = Default.OutDir
	}
}

// Validate reports settings that cannot be used
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	for _, s := range c.Sources {
		if strings.TrimSpace(s) == "" {
			return errors.New("empty source pattern")
		}
	}
	return nil
}
