// Package config provides YAML-based configuration for the label designer service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up next to the executable when no path is given.
const DefaultFileName = "labeldesigner.yaml"

// AppConfig represents the root configuration structure
type AppConfig struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Rendering configuration
	Rendering RenderingConfig `yaml:"rendering"`

	// Advanced options
	Advanced AdvancedConfig `yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	EnableCORS   bool   `yaml:"enableCors"`
	AllowOrigins string `yaml:"allowOrigins"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
	BodyLimit    string `yaml:"bodyLimit"`
}

// StorageConfig contains template storage settings
type StorageConfig struct {
	DataDirectory     string `yaml:"dataDirectory"`
	DatabaseFile      string `yaml:"databaseFile"`
	DefaultsDirectory string `yaml:"defaultsDirectory"`
	EnablePersistence bool   `yaml:"enablePersistence"`
}

// RenderingConfig contains label rendering settings
type RenderingConfig struct {
	FallbackWidth  float64 `yaml:"fallbackWidth"`
	FallbackHeight float64 `yaml:"fallbackHeight"`
	QRErrorLevel   string  `yaml:"qrErrorLevel"`
	QRSize         int     `yaml:"qrSize"`
	BarcodeWidth   int     `yaml:"barcodeWidth"`
	BarcodeHeight  int     `yaml:"barcodeHeight"`
	BarcodeMargin  int     `yaml:"barcodeMargin"`
	CurrencySymbol string  `yaml:"currencySymbol"`
	MaxImageEdge   int     `yaml:"maxImageEdge"`
	MaxImagePixels int     `yaml:"maxImagePixels"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `yaml:"logLevel"`
	EnableRequestLogging bool   `yaml:"enableRequestLogging"`
	DuckDBThreads        int    `yaml:"duckdbThreads"`
	DuckDBMemoryLimit    string `yaml:"duckdbMemoryLimit"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "10M",
		},
		Storage: StorageConfig{
			DataDirectory:     "./data",
			DatabaseFile:      "templates.duckdb",
			DefaultsDirectory: "./defaults",
			EnablePersistence: true,
		},
		Rendering: RenderingConfig{
			FallbackWidth:  300,
			FallbackHeight: 200,
			QRErrorLevel:   "Q",
			QRSize:         256,
			BarcodeWidth:   300,
			BarcodeHeight:  100,
			BarcodeMargin:  2,
			CurrencySymbol: "₹",
			MaxImageEdge:   2048,
			MaxImagePixels: 40_000_000,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
			DuckDBThreads:        2,
			DuckDBMemoryLimit:    "256MB",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is
// created with the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Keys absent from the file keep their defaults.
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to a YAML file
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Label Designer configuration\n# This file is auto-generated on first run\n\n")
	content := append(header, output...)

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	// PORT override
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// DATA_DIR override
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}

	// LOG_LEVEL override
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if c.Storage.DefaultsDirectory != "" && !filepath.IsAbs(c.Storage.DefaultsDirectory) {
		c.Storage.DefaultsDirectory = filepath.Join(configDir, c.Storage.DefaultsDirectory)
	}
}

// GetDataDir returns the absolute data directory path
func (c *AppConfig) GetDataDir() string {
	return c.Storage.DataDirectory
}

// GetDatabasePath returns the DuckDB file path inside the data directory
func (c *AppConfig) GetDatabasePath() string {
	if filepath.IsAbs(c.Storage.DatabaseFile) {
		return c.Storage.DatabaseFile
	}
	return filepath.Join(c.Storage.DataDirectory, c.Storage.DatabaseFile)
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Timeouts returns the read, write and idle timeouts of the HTTP server
func (c *AppConfig) Timeouts() (read, write, idle time.Duration) {
	return seconds(c.Server.ReadTimeout), seconds(c.Server.WriteTimeout), seconds(c.Server.IdleTimeout)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	if err := os.MkdirAll(c.Storage.DataDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Storage.DataDirectory, err)
	}
	return nil
}
