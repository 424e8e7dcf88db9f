// ABOUTME: Loads and saves the admin app config from YAML or JSON files.
// ABOUTME: Applies .env and POCKETMS_* environment overrides, then validates.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389/pocketms/core"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override identity fields from the file.
const (
	EnvAppName     = "POCKETMS_APP_NAME"
	EnvDescription = "POCKETMS_DESCRIPTION"
	EnvLogoURL     = "POCKETMS_LOGO_URL"
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads, decodes and validates the config at path. The returned config
// rejects duplicate registrations.
func Load(path string) (*core.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses data without validating it. Pages is always initialized.
func Decode(data []byte, format Format) (*core.Config, error) {
	cfg := &core.Config{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if cfg.Pages == nil {
		cfg.Pages = []*core.PageConfig{}
	}
	cfg.Duplicates = core.DuplicateReject
	return cfg, nil
}

// Encode serializes cfg in the given format.
func Encode(cfg *core.Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Save writes cfg to path, choosing the format from the extension.
func Save(path string, cfg *core.Config) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(cfg *core.Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAppName)); v != "" {
		cfg.AppName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDescription)); v != "" {
		cfg.Description = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogoURL)); v != "" {
		cfg.LogoURL = v
	}
}
