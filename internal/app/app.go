package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/duitai/purview/internal/blob"
	"github.com/duitai/purview/internal/cache"
	"github.com/duitai/purview/internal/config"
	"github.com/duitai/purview/internal/database"
	"github.com/duitai/purview/internal/handler"
	"github.com/duitai/purview/internal/preview"
	"github.com/duitai/purview/internal/render"
	"github.com/duitai/purview/internal/server"
)

type App struct {
	Config      *config.Config
	DB          *database.DB
	Server      *server.Server
	RenderCache *cache.RenderCache
}

func New(cfg *config.Config) (*App, error) {
	// Open database
	db, err := database.Open(cfg.Database.Path, database.Options{
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Connect the render cache when enabled
	var renderCache *cache.RenderCache
	if cfg.Cache.Enabled {
		renderCache, err = cache.Connect(cfg.Cache, cfg.Preview.CacheMaxAge)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	// Connect object storage when configured
	var store *blob.Store
	if cfg.Storage.Endpoint != "" {
		store, err = blob.New(cfg.Storage)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		slog.Info("object storage enabled", "endpoint", cfg.Storage.Endpoint)
	} else {
		slog.Info("object storage not configured, image endpoint will redirect")
	}

	repo := preview.NewRepository(db.DB)
	renderer := render.New(render.Options{
		PublicBaseURL:     cfg.Server.PublicBaseURL,
		DefaultOGImageURL: cfg.Preview.DefaultOGImageURL,
		DefaultThemeColor: cfg.Preview.DefaultThemeColor,
		CTAPathPrefix:     cfg.Preview.CTAPathPrefix,
	})

	h := handler.New(handler.Dependencies{
		Repo:            repo,
		Renderer:        renderer,
		RenderCache:     renderCache,
		Store:           store,
		DefaultImageURL: cfg.Preview.DefaultOGImageURL,
		CacheMaxAge:     cfg.Preview.CacheMaxAge,
	})

	router := server.NewRouter(h, cfg.Server.AllowedOrigins)

	tlsOpts := server.TLSOptions{
		Mode:     cfg.Server.TLS.Mode,
		Domain:   cfg.Server.TLS.Auto.Domain,
		Email:    cfg.Server.TLS.Auto.Email,
		CacheDir: cfg.Server.TLS.Auto.CacheDir,
	}
	if tlsOpts.Mode == "auto" {
		if err := os.MkdirAll(tlsOpts.CacheDir, 0700); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	srv := server.New(cfg.Server.Host, cfg.Server.Port, router, tlsOpts)

	return &App{
		Config:      cfg,
		DB:          db,
		Server:      srv,
		RenderCache: renderCache,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	slog.Info("starting purview",
		"addr", a.Server.Addr(),
		"database", a.Config.Database.Path,
		"public_base_url", a.Config.Server.PublicBaseURL,
		"tls", a.Server.TLSMode(),
		"render_cache", a.RenderCache != nil,
	)

	return a.Server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	if a.RenderCache != nil {
		_ = a.RenderCache.Close()
	}
	return a.DB.Close()
}
