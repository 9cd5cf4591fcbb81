package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"topodraw/internal/topology"
)

// Config holds the editor settings read from config.toml.
type Config struct {
	SaveDirectory string
	DefaultStyle  topology.RoutingStyle
	DefaultLayer  topology.Layer
	CellWidth     float64
	CellHeight    float64
	Confirmations bool
	LogFile       string
}

const (
	defaultConfigPath = "~/.config/topodraw/config.toml"
	defaultCellWidth  = 10
	defaultCellHeight = 20
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		DefaultStyle:  topology.Straight,
		DefaultLayer:  topology.Layer3,
		CellWidth:     defaultCellWidth,
		CellHeight:    defaultCellHeight,
		Confirmations: true,
	}
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SaveDir       string  `toml:"save_dir"`
		DefaultStyle  string  `toml:"default_style"`
		DefaultLayer  string  `toml:"default_layer"`
		CellWidth     float64 `toml:"cell_width"`
		CellHeight    float64 `toml:"cell_height"`
		Confirmations *bool   `toml:"confirmations"`
		LogFile       string  `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.SaveDir); dir != "" {
		cfg.SaveDirectory = mustExpand(dir)
	}
	if style := strings.TrimSpace(raw.DefaultStyle); style != "" {
		cfg.DefaultStyle = topology.ParseRoutingStyle(style)
	}
	if layer := strings.TrimSpace(raw.DefaultLayer); layer != "" {
		cfg.DefaultLayer = topology.ParseLayer(layer)
	}
	if raw.CellWidth > 0 {
		cfg.CellWidth = raw.CellWidth
	}
	if raw.CellHeight > 0 {
		cfg.CellHeight = raw.CellHeight
	}
	if raw.Confirmations != nil {
		cfg.Confirmations = *raw.Confirmations
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

// SavePath places filename inside the save directory. Absolute filenames
// and an unset save directory are left alone. Writers create the directory.
func (c Config) SavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.SaveDirectory, filename)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
