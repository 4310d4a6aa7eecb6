package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the user-editable config.yaml.
type Config struct {
	// Binary is the nuclei executable name or path.
	Binary string `yaml:"binary" json:"binary" jsonschema:"description=nuclei executable name or path,default=nuclei"`
	// WorkDir receives scan result files.
	WorkDir string `yaml:"work_dir" json:"work_dir" jsonschema:"description=directory for scan result files,default=./work"`
	// CacheFile holds the template list cache. Empty means <config dir>/templates_cache.json.
	CacheFile string `yaml:"cache_file,omitempty" json:"cache_file,omitempty" jsonschema:"description=template cache file"`
	// Proxy is passed to nuclei with -p when ProxyEnabled is set.
	Proxy        string `yaml:"proxy,omitempty" json:"proxy,omitempty" jsonschema:"description=proxy URL passed to nuclei -p"`
	ProxyEnabled bool   `yaml:"proxy_enabled,omitempty" json:"proxy_enabled,omitempty"`
	// CustomDir is the last custom template folder.
	CustomDir string `yaml:"custom_dir,omitempty" json:"custom_dir,omitempty" jsonschema:"description=folder scanned for custom .yaml/.yml templates"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Binary:  "nuclei",
		WorkDir: "./work",
	}
}

// Load reads config.yaml. A missing file yields Default and no error.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads the config at p, filling blanks with defaults.
func LoadFrom(p string) (Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", p, err)
	}
	return c.normalize(), nil
}

// Save writes c to config.yaml, creating the directory if needed.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c.normalize())
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}

// CachePath resolves the template cache location.
func (c Config) CachePath() (string, error) {
	if strings.TrimSpace(c.CacheFile) != "" {
		return c.CacheFile, nil
	}
	return File("templates_cache.json")
}

func (c Config) normalize() Config {
	d := Default()
	c.Binary = strings.TrimSpace(c.Binary)
	if c.Binary == "" {
		c.Binary = d.Binary
	}
	c.WorkDir = strings.TrimSpace(c.WorkDir)
	if c.WorkDir == "" {
		c.WorkDir = d.WorkDir
	}
	c.CacheFile = strings.TrimSpace(c.CacheFile)
	c.Proxy = strings.TrimSpace(c.Proxy)
	c.CustomDir = strings.TrimSpace(c.CustomDir)
	return c
}
