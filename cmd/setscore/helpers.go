package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/setscore/setscore/internal/catalog"
	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/config"
	"github.com/setscore/setscore/pkg/surface"
)

// loadCLIConfig resolves the config file (explicit path, then the
// .setscore directory walk from the working directory) and loads it.
func loadCLIConfig(explicit string) (*config.Config, error) {
	path := explicit
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	return config.Load(path)
}

// openStore opens the sqlite-backed prediction store. The caller must
// Close the returned KV when done.
func openStore(cfg *config.Config, override string) (*store.PredictionStore, *store.SQLite, error) {
	path := firstNonEmpty(override, cfg.StorePath())
	kv, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return store.NewPredictionStore(kv), kv, nil
}

// loadCatalog reads the song catalog if one is configured; a missing
// catalog degrades to raw-id output rather than failing.
func loadCatalog(cfg *config.Config, override string) *catalog.Catalog {
	path := firstNonEmpty(override, cfg.Catalog.Path)
	if path == "" {
		return catalog.Empty()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: catalog unavailable (%v), song ids will not be resolved\n", err)
		return catalog.Empty()
	}
	return cat
}

func newRenderer(format string) (surface.Renderer, error) {
	switch format {
	case "text", "":
		return &surface.TerminalRenderer{}, nil
	case "json":
		return &surface.JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(data), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
