package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	defaults := Defaults()
	if err := k.Load(defaultsProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load from config file if it exists
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
		}
	} else {
		// Try default config paths
		for _, path := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
					return nil, fmt.Errorf("loading config file: %w", err)
				}
				break
			}
		}
	}

	// 3. Load from environment variables (PURVIEW_ prefix). Env names are
	// ambiguous where the config key itself contains underscores
	// (PURVIEW_DATABASE_MAX_OPEN_CONNS is database.max_open_conns, not
	// database.max.open.conns), so resolve each name against the known
	// flattened keys rather than splitting on every underscore.
	knownKeys := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		knownKeys[strings.ReplaceAll(key, ".", "_")] = key
	}
	if err := k.Load(env.Provider("PURVIEW_", ".", func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, "PURVIEW_"))
		if key, ok := knownKeys[name]; ok {
			return key
		}
		return strings.ReplaceAll(name, "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// 4. Load from CLI flags
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	// 5. Unmarshal into struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
	}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// The default OG image tracks the public base URL unless overridden.
	if cfg.Preview.DefaultOGImageURL == defaults.Preview.DefaultOGImageURL &&
		cfg.Server.PublicBaseURL != defaults.Server.PublicBaseURL {
		cfg.Preview.DefaultOGImageURL = strings.TrimRight(cfg.Server.PublicBaseURL, "/") + "/static/default-og.png"
	}

	// 6. Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

type defaultsProviderStruct struct {
	defaults *Config
}

func defaultsProvider(defaults *Config) *defaultsProviderStruct {
	return &defaultsProviderStruct{defaults: defaults}
}

func (d *defaultsProviderStruct) ReadBytes() ([]byte, error) {
	return nil, nil
}

func (d *defaultsProviderStruct) Read() (map[string]interface{}, error) {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"host":            d.defaults.Server.Host,
			"port":            d.defaults.Server.Port,
			"public_base_url": d.defaults.Server.PublicBaseURL,
			"allowed_origins": d.defaults.Server.AllowedOrigins,
			"tls": map[string]interface{}{
				"mode": d.defaults.Server.TLS.Mode,
				"auto": map[string]interface{}{
					"domain":    d.defaults.Server.TLS.Auto.Domain,
					"email":     d.defaults.Server.TLS.Auto.Email,
					"cache_dir": d.defaults.Server.TLS.Auto.CacheDir,
				},
			},
		},
		"database": map[string]interface{}{
			"path":           d.defaults.Database.Path,
			"busy_timeout":   d.defaults.Database.BusyTimeout.String(),
			"max_open_conns": d.defaults.Database.MaxOpenConns,
		},
		"preview": map[string]interface{}{
			"default_og_image_url": d.defaults.Preview.DefaultOGImageURL,
			"default_theme_color":  d.defaults.Preview.DefaultThemeColor,
			"cta_path_prefix":      d.defaults.Preview.CTAPathPrefix,
			"cache_max_age":        d.defaults.Preview.CacheMaxAge.String(),
		},
		"cache": map[string]interface{}{
			"enabled":  d.defaults.Cache.Enabled,
			"addr":     d.defaults.Cache.Addr,
			"password": d.defaults.Cache.Password,
			"db":       d.defaults.Cache.DB,
		},
		"storage": map[string]interface{}{
			"endpoint":   d.defaults.Storage.Endpoint,
			"access_key": d.defaults.Storage.AccessKey,
			"secret_key": d.defaults.Storage.SecretKey,
			"use_ssl":    d.defaults.Storage.UseSSL,
			"bucket":     d.defaults.Storage.Bucket,
		},
		"log": map[string]interface{}{
			"level":  d.defaults.Log.Level,
			"format": d.defaults.Log.Format,
		},
	}, nil
}

func SetupFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("purview", pflag.ContinueOnError)
	flags.String("config", "", "Path to config file")
	flags.String("server.host", "", "Server host")
	flags.Int("server.port", 0, "Server port")
	flags.String("server.public_base_url", "", "Public base URL for CTA and default links")
	flags.StringSlice("server.allowed_origins", nil, "Allowed CORS origins")
	flags.String("server.tls.mode", "", "TLS mode: off or auto")
	flags.String("server.tls.auto.domain", "", "Domain for automatic TLS (auto mode)")
	flags.String("server.tls.auto.email", "", "Contact email for Let's Encrypt (auto mode)")
	flags.String("server.tls.auto.cache_dir", "", "Certificate cache directory (auto mode)")
	flags.String("database.path", "", "Database path")
	flags.String("preview.default_og_image_url", "", "Default hero image URL")
	flags.String("preview.default_theme_color", "", "Default meta theme color")
	flags.Duration("preview.cache_max_age", 0, "Render cache lifetime")
	flags.Bool("cache.enabled", false, "Enable the Redis render cache")
	flags.String("cache.addr", "", "Redis address")
	flags.String("storage.endpoint", "", "Object storage endpoint")
	flags.String("storage.bucket", "", "Object storage bucket")
	return flags
}
