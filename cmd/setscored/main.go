// Command setscored is the setscore daemon. It serves the prediction
// store, scoring, and share decoding over a local REST API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/setscore/setscore/internal/api"
	"github.com/setscore/setscore/internal/catalog"
	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/config"
)

type daemonConfig struct {
	Port        string
	StorePath   string
	CatalogPath string
	APIKey      string
	ConfigPath  string
}

func loadDaemonConfig() daemonConfig {
	return daemonConfig{
		Port:        envOrDefault("PORT", "8090"),
		StorePath:   os.Getenv("SETSCORE_STORE"),
		CatalogPath: os.Getenv("SETSCORE_CATALOG"),
		APIKey:      os.Getenv("SETSCORE_API_KEY"),
		ConfigPath:  os.Getenv("SETSCORE_CONFIG"),
	}
}

func main() {
	dcfg := loadDaemonConfig()
	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "setscored").Logger()

	cfgPath := dcfg.ConfigPath
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgPath = config.FindConfigFile(wd)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	storePath := dcfg.StorePath
	if storePath == "" {
		storePath = cfg.StorePath()
	}
	kv, err := store.OpenSQLite(storePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", storePath).Msg("open store")
	}
	defer kv.Close()

	catalogPath := dcfg.CatalogPath
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}
	cache := catalog.NewCache(func(context.Context) (*catalog.Catalog, error) {
		if catalogPath == "" {
			return catalog.Empty(), nil
		}
		return catalog.Load(catalogPath)
	})

	handler := api.NewHandler(store.NewPredictionStore(kv), cache, cfg.Scoring, log)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	var root http.Handler = mux
	root = api.RequestLog(log)(root)
	root = api.APIKeyAuth(dcfg.APIKey)(root)
	root = api.CORS(root)

	srv := &http.Server{
		Addr:    ":" + dcfg.Port,
		Handler: root,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", storePath).Msg("starting setscored")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
