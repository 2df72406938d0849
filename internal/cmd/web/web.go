// Package web parses configuration for the web process and runs it.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/caoslabs/caos/internal/app"
	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/catalog/generative"
	"github.com/caoslabs/caos/internal/catalog/loader"
	catalogsqlite "github.com/caoslabs/caos/internal/catalog/storage/sqlite"
	"github.com/caoslabs/caos/internal/platform/config"
	"github.com/caoslabs/caos/internal/platform/otel"
	"github.com/caoslabs/caos/internal/services/web"
	"github.com/caoslabs/caos/internal/session"
	sessionstorage "github.com/caoslabs/caos/internal/session/storage"
	sessionbbolt "github.com/caoslabs/caos/internal/session/storage/bbolt"
	sessionredis "github.com/caoslabs/caos/internal/session/storage/redis"
)

// Session backends selectable through configuration.
const (
	SessionBackendBbolt = "bbolt"
	SessionBackendRedis = "redis"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr       string `env:"CAOS_HTTP_ADDR" envDefault:"localhost:8080"`
	Locale         string `env:"CAOS_LOCALE" envDefault:"pt-BR"`
	SessionBackend string `env:"CAOS_SESSION_BACKEND" envDefault:"bbolt"`
	SessionDBPath  string `env:"CAOS_SESSION_DB_PATH" envDefault:"caos-session.db"`
	RedisAddr      string `env:"CAOS_REDIS_ADDR"`
	RedisPassword  string `env:"CAOS_REDIS_PASSWORD"`
	CatalogDBPath  string `env:"CAOS_CATALOG_DB_PATH" envDefault:"caos-catalog.db"`
	OpenAIAPIKey   string `env:"CAOS_OPENAI_API_KEY"`
	OpenAIModel    string `env:"CAOS_OPENAI_MODEL"`
	OtelEndpoint   string `env:"CAOS_OTEL_ENDPOINT"`
	OtelEnabled    bool   `env:"CAOS_OTEL_ENABLED" envDefault:"true"`
}

// ParseConfig loads configuration from the environment, then lets flags
// override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "UI locale tag")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "session backend (bbolt or redis)")
	fs.StringVar(&cfg.SessionDBPath, "session-db", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.CatalogDBPath, "catalog-db", cfg.CatalogDBPath, "catalog cache database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch strings.TrimSpace(cfg.SessionBackend) {
	case SessionBackendBbolt, SessionBackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
	return cfg, nil
}

// Run wires the orchestrator and serves it until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, otel.Config{
		ServiceName: "caos-web",
		Endpoint:    cfg.OtelEndpoint,
		Enabled:     cfg.OtelEnabled,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	catalogCache, err := catalogsqlite.Open(cfg.CatalogDBPath)
	if err != nil {
		return fmt.Errorf("open catalog cache: %w", err)
	}
	defer func() {
		if err := catalogCache.Close(); err != nil {
			log.Printf("close catalog cache: %v", err)
		}
	}()

	sessions, err := session.NewManager(session.Config{
		Store:   sessionStore,
		Latency: session.DefaultLatency,
	})
	if err != nil {
		return fmt.Errorf("init session manager: %w", err)
	}

	var provider catalog.Provider = catalog.NewStaticProvider()
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		provider = generative.New(generative.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
	}

	orchestrator, err := app.New(app.Config{
		Sessions: sessions,
		Loader:   loader.New(loader.Config{Cache: catalogCache}),
		Provider: provider,
	})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	go func() {
		if err := orchestrator.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("app loop stopped: %v", err)
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr: cfg.HTTPAddr,
		App:      orchestrator,
		Locale:   cfg.Locale,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func openSessionStore(ctx context.Context, cfg Config) (sessionstorage.Store, func(), error) {
	switch strings.TrimSpace(cfg.SessionBackend) {
	case SessionBackendRedis:
		store, err := sessionredis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis session store: %w", err)
		}
		return store, closeLogged("redis session store", store.Close), nil
	default:
		store, err := sessionbbolt.Open(cfg.SessionDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return store, closeLogged("session store", store.Close), nil
	}
}

func closeLogged(name string, close func() error) func() {
	return func() {
		if err := close(); err != nil {
			log.Printf("close %s: %v", name, err)
		}
	}
}
