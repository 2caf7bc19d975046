package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PAGESMITH_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PAGESMITH_*). A double underscore in the
// variable name separates nested keys: PAGESMITH_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	_, statErr := os.Stat(path)
	if statErr == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("accessing config %s: %w", path, statErr)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Without a config file the starter page set is used.
	if statErr != nil && len(cfg.Pages) == 0 {
		cfg.Pages = DefaultPages(cfg.SiteName, cfg.SiteURL)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ComponentsDir == "" {
		return fmt.Errorf("components_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(c.Pages) == 0 {
		return fmt.Errorf("at least one page must be configured")
	}
	for id, p := range c.Pages {
		if strings.ContainsAny(id, `/\`) || id == "" {
			return fmt.Errorf("invalid page id %q", id)
		}
		if p.ContentFile == "" {
			return fmt.Errorf("page %q: content_file is required", id)
		}
	}

	if c.Build.DistDir == "" {
		return fmt.Errorf("build.dist_dir is required")
	}
	if c.Build.Entry == "" {
		return fmt.Errorf("build.entry is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for from, to := range c.Server.Routes {
		if !strings.HasPrefix(from, "/") || !strings.HasPrefix(to, "/") {
			return fmt.Errorf("route %q -> %q: both sides must start with /", from, to)
		}
	}
	if c.Server.NotFoundPage != "" && !strings.HasPrefix(c.Server.NotFoundPage, "/") {
		return fmt.Errorf("server.not_found_page must start with /")
	}

	return nil
}
