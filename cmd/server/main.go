package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/label-designer/backend/internal/api"
	"github.com/label-designer/backend/internal/config"
	"github.com/label-designer/backend/internal/labelgen"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/storage"
	"github.com/label-designer/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configFlag := flag.String("config", "", "path to the YAML config (default: next to the executable)")
	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		// Get the executable's directory for config resolution
		exePath, err := os.Executable()
		if err != nil {
			fmt.Printf("Failed to get executable path: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New("labeld", cfg.Advanced.LogLevel)

	store, storeMode, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := storage.SeedDefaults(seedCtx, store, cfg.Storage.DefaultsDirectory, logger); err != nil {
		logger.Warnf("failed to seed default templates: %v", err)
	}
	cancelSeed()

	generator := labelgen.NewFromConfig(cfg.Rendering, logger)

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger

	api.SetupMiddleware(e, cfg)
	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Store:     store,
		Generator: generator,
		Logger:    logger,
		Version:   Version,
	}))

	// Register embedded frontend if available
	mode := "API only"
	if frontend, err := web.FileSystem(); err == nil && web.HasFrontend(frontend) {
		web.RegisterStaticRoutes(e, frontend)
		mode = "API + embedded designer"
	}

	read, write, idle := cfg.Timeouts()
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}

	// Print startup banner
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Label Designer Server                           ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("║  Storage:    %-45s║\n", storeMode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	errChan := make(chan error, 1)
	go func() {
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		logger.Errorf("server stopped: %v", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}

// openStore opens the DuckDB template database, or an in-memory store when
// persistence is disabled.
func openStore(cfg *config.AppConfig) (storage.Store, string, error) {
	if !cfg.Storage.EnablePersistence {
		return storage.NewMemoryStore(), "memory", nil
	}
	dbPath := cfg.GetDatabasePath()
	store, err := storage.OpenDuckStore(dbPath, storage.DuckOptions{
		MemoryLimit: cfg.Advanced.DuckDBMemoryLimit,
		Threads:     cfg.Advanced.DuckDBThreads,
	}, logging.New("store", cfg.Advanced.LogLevel))
	if err != nil {
		return nil, "", err
	}
	return store, "duckdb " + filepath.Base(dbPath), nil
}
