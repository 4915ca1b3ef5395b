package config

import "time"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Preview  PreviewConfig  `koanf:"preview"`
	Cache    CacheConfig    `koanf:"cache"`
	Storage  StorageConfig  `koanf:"storage"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Host           string    `koanf:"host"`
	Port           int       `koanf:"port"`
	PublicBaseURL  string    `koanf:"public_base_url"`
	AllowedOrigins []string  `koanf:"allowed_origins"`
	TLS            TLSConfig `koanf:"tls"`
}

type TLSConfig struct {
	Mode string        `koanf:"mode"` // off, auto
	Auto TLSAutoConfig `koanf:"auto"`
}

type TLSAutoConfig struct {
	Domain   string `koanf:"domain"`
	Email    string `koanf:"email"`
	CacheDir string `koanf:"cache_dir"`
}

type DatabaseConfig struct {
	Path         string        `koanf:"path"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"`
	MaxOpenConns int           `koanf:"max_open_conns"`
}

// PreviewConfig controls fallback content and caching for rendered pages.
type PreviewConfig struct {
	DefaultOGImageURL string        `koanf:"default_og_image_url"`
	DefaultThemeColor string        `koanf:"default_theme_color"`
	CTAPathPrefix     string        `koanf:"cta_path_prefix"`
	CacheMaxAge       time.Duration `koanf:"cache_max_age"`
}

type CacheConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// StorageConfig configures the object store backing hero images.
// Leaving endpoint empty disables direct streaming; the image endpoint
// then redirects to the stored image URL instead.
type StorageConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			PublicBaseURL: "https://r.duitai.in",
			TLS: TLSConfig{
				Mode: "off",
				Auto: TLSAutoConfig{CacheDir: "./data/certs"},
			},
		},
		Database: DatabaseConfig{
			Path:         "./data/purview.db",
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 4,
		},
		Preview: PreviewConfig{
			DefaultOGImageURL: "https://r.duitai.in/static/default-og.png",
			DefaultThemeColor: "#0047AB",
			CTAPathPrefix:     "DUITAI",
			CacheMaxAge:       60 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			Addr:    "localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
