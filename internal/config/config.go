package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = ".mdtoc.yaml"

type Config struct {
	Defaults struct {
		File         string `yaml:"file"`
		HasTitle     bool   `yaml:"has_title"`
		HasTOCHeader bool   `yaml:"has_toc_header"`
		TOCHeader    string `yaml:"toc_header"`
		Override     bool   `yaml:"override"`
		Backup       bool   `yaml:"backup"`
	} `yaml:"defaults"`
	Walk struct {
		Ignore []string `yaml:"ignore"`
	} `yaml:"walk"`
	Report struct {
		Path string `yaml:"path"` // empty disables the JSON run report
	} `yaml:"report"`
}

// Default returns the built-in settings used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.Defaults.File = "README.md"
	cfg.Defaults.HasTitle = true
	cfg.Defaults.HasTOCHeader = true
	cfg.Defaults.Override = true
	cfg.Defaults.Backup = true
	cfg.Walk.Ignore = []string{".git", "vendor", "node_modules", "testdata"}
	return &cfg
}

// LoadConfig reads path on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if name := os.Getenv("MDTOC_FILE"); name != "" {
		cfg.Defaults.File = name
	}
	if header := os.Getenv("MDTOC_TOC_HEADER"); header != "" {
		cfg.Defaults.TOCHeader = header
	}
	if v := os.Getenv("MDTOC_NO_BACKUP"); v != "" {
		if noBackup, err := strconv.ParseBool(v); err == nil {
			cfg.Defaults.Backup = !noBackup
		}
	}

	return cfg, nil
}
