// PersonaStudio - AI-assisted persona authoring studio
// License: MIT
//
// Copyright (c) 2026 PersonaStudio contributors

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dotsetgreg/personastudio/pkg/config"
	"github.com/dotsetgreg/personastudio/pkg/gateway"
	"github.com/dotsetgreg/personastudio/pkg/persona"
	"github.com/dotsetgreg/personastudio/pkg/storage"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

const appName = "personastudio"

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

func printVersion() {
	fmt.Printf("%s %s\n", appName, formatVersion())
	if buildTime != "" {
		fmt.Printf("  Build: %s\n", buildTime)
	}
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	fmt.Printf("  Go: %s\n", goVer)
}

func main() {
	if err := executeCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// studio bundles the wired runtime a command works against.
type studio struct {
	cfg    *config.Config
	log    *zap.Logger
	gw     persona.Gateway
	store  *persona.Store
	editor *persona.Editor
	kv     *storage.SQLiteKV
}

func (s *studio) close() {
	if s.kv != nil {
		_ = s.kv.Close()
	}
	_ = s.log.Sync()
}

func openStudio(configPath string) (*studio, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.Provider.APIKey) == "" {
		return nil, fmt.Errorf("provider.api_key is required in %s or PERSONASTUDIO_PROVIDER_API_KEY", configPath)
	}

	log, err := newLogger(cfg.Studio.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	gw, err := gateway.NewClient(gateway.Config{
		APIBase: cfg.Provider.APIBase,
		APIKey:  cfg.Provider.APIKey,
		Model:   cfg.Provider.Model,
		Proxy:   cfg.Provider.Proxy,
	})
	if err != nil {
		return nil, fmt.Errorf("init gateway: %w", err)
	}

	var kv *storage.SQLiteKV
	if path := cfg.StoragePath(); path != "" {
		kv, err = storage.NewSQLiteKV(path)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	var storeKV persona.KV
	if kv != nil {
		storeKV = kv
	}
	store := persona.NewStore(context.Background(), gw, storeKV, log)
	editor := persona.NewEditor(gw, persona.EditorConfig{
		DebounceWindow: time.Duration(cfg.Studio.DebounceMS) * time.Millisecond,
		Logger:         log,
	})

	return &studio{
		cfg:    cfg,
		log:    log,
		gw:     gw,
		store:  store,
		editor: editor,
		kv:     kv,
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
