package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"
)

var themeColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3}(?:[0-9a-fA-F]{3})?$`)

func Validate(cfg *Config) error {
	var errs []error

	// Server validation
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535"))
	}
	if cfg.Server.PublicBaseURL == "" {
		errs = append(errs, fmt.Errorf("server.public_base_url is required"))
	} else {
		u, err := url.Parse(cfg.Server.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("server.public_base_url %q is not a valid URL with scheme", cfg.Server.PublicBaseURL))
		}
	}

	// Allowed origins validation
	for i, origin := range cfg.Server.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("server.allowed_origins[%d] %q is not a valid URL with scheme", i, origin))
		}
	}

	// TLS validation
	switch cfg.Server.TLS.Mode {
	case "", "off":
		// no additional validation needed
	case "auto":
		if cfg.Server.TLS.Auto.Domain == "" {
			errs = append(errs, fmt.Errorf("server.tls.auto.domain is required when tls mode is auto"))
		}
		if cfg.Server.TLS.Auto.CacheDir == "" {
			errs = append(errs, fmt.Errorf("server.tls.auto.cache_dir is required when tls mode is auto"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.tls.mode must be off or auto"))
	}

	// Database validation
	if cfg.Database.Path == "" {
		errs = append(errs, fmt.Errorf("database.path is required"))
	}
	if cfg.Database.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be at least 1"))
	}

	// Preview validation
	if cfg.Preview.DefaultOGImageURL == "" {
		errs = append(errs, fmt.Errorf("preview.default_og_image_url is required"))
	}
	if !themeColorPattern.MatchString(cfg.Preview.DefaultThemeColor) {
		errs = append(errs, fmt.Errorf("preview.default_theme_color %q must be a hex color like #0047AB", cfg.Preview.DefaultThemeColor))
	}
	if cfg.Preview.CTAPathPrefix == "" {
		errs = append(errs, fmt.Errorf("preview.cta_path_prefix is required"))
	}
	if cfg.Preview.CacheMaxAge < time.Second {
		errs = append(errs, fmt.Errorf("preview.cache_max_age must be at least 1s"))
	}

	// Cache validation (only when enabled)
	if cfg.Cache.Enabled && cfg.Cache.Addr == "" {
		errs = append(errs, fmt.Errorf("cache.addr is required when cache is enabled"))
	}

	// Storage validation (only when configured)
	if cfg.Storage.Endpoint != "" {
		if cfg.Storage.AccessKey == "" {
			errs = append(errs, fmt.Errorf("storage.access_key is required when storage.endpoint is set"))
		}
		if cfg.Storage.SecretKey == "" {
			errs = append(errs, fmt.Errorf("storage.secret_key is required when storage.endpoint is set"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
