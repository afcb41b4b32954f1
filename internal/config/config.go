package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

const (
	DefaultVaultPath   = "~/Documents/Obsidian"
	DefaultNotesFolder = "Sticky Notes"
	ConfigFileName     = "config.json"
	appName            = "stickies"
)

var (
	ErrConfigInvalid  = errors.New("invalid config")
	ErrConfigFileRead = errors.New("cannot read config file")
)

// Config holds all configuration options.
type Config struct {
	Vault             string `json:"vault"`
	NotesFolder       string `json:"notes_folder"`
	PageSize          int    `json:"page_size"`
	EdgeThreshold     int    `json:"edge_threshold"`      // rows from a viewport edge that start auto-scroll
	MaxScrollVelocity int    `json:"max_scroll_velocity"` // rows per frame
	FrameIntervalMs   int    `json:"frame_interval_ms"`
	NearBottomRows    int    `json:"near_bottom_rows"` // rows from the content end that load the next page
	WriteBackColors   bool   `json:"write_back_colors"`
	DBPath            string `json:"db_path,omitempty"`
	LogLevel          string `json:"log_level"`
	LogFile           string `json:"log_file,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Vault:             DefaultVaultPath,
		NotesFolder:       DefaultNotesFolder,
		PageSize:          20,
		EdgeThreshold:     3,
		MaxScrollVelocity: 3,
		FrameIntervalMs:   50,
		NearBottomRows:    10,
		LogLevel:          "info",
	}
}

// FrameInterval returns the auto-scroll frame interval.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// ResolvedVault returns the vault path with a leading ~ expanded.
func (c Config) ResolvedVault() string {
	return ExpandHome(c.Vault)
}

// ResolvedDBPath returns the database path, defaulting to a per-vault file
// under $XDG_DATA_HOME/stickies.
func (c Config) ResolvedDBPath() string {
	if c.DBPath != "" {
		return ExpandHome(c.DBPath)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, hashVaultPath(c.ResolvedVault()+"\x00"+c.NotesFolder)+".db")
}

// Load builds the configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global config file ($XDG_CONFIG_HOME/stickies/config.json), JSON with comments
// 3. Explicit config file via path (if non-empty, must exist)
// 4. Environment (STICKIES_VAULT, STICKIES_FOLDER, STICKIES_LOG_LEVEL)
func Load(path string) (Config, error) {
	cfg := Default()

	global := GlobalPath()
	if global != "" {
		if err := mergeFile(&cfg, global, false); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		if err := mergeFile(&cfg, ExpandHome(path), true); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GlobalPath returns the path of the global config file, or "" if the
// home directory cannot be determined.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, ConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, ConfigFileName)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Vault) == "":
		return fmt.Errorf("%w: vault is required", ErrConfigInvalid)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrConfigInvalid, c.PageSize)
	case c.EdgeThreshold <= 0:
		return fmt.Errorf("%w: edge_threshold must be positive, got %d", ErrConfigInvalid, c.EdgeThreshold)
	case c.MaxScrollVelocity <= 0:
		return fmt.Errorf("%w: max_scroll_velocity must be positive, got %d", ErrConfigInvalid, c.MaxScrollVelocity)
	case c.FrameIntervalMs <= 0:
		return fmt.Errorf("%w: frame_interval_ms must be positive, got %d", ErrConfigInvalid, c.FrameIntervalMs)
	case c.NearBottomRows < 0:
		return fmt.Errorf("%w: near_bottom_rows must not be negative, got %d", ErrConfigInvalid, c.NearBottomRows)
	}
	return nil
}

func mergeFile(cfg *Config, path string, mustExist bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	// Decoding into the existing value keeps fields the file does not mention.
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if env := os.Getenv("STICKIES_VAULT"); env != "" {
		cfg.Vault = env
	}
	if env := os.Getenv("STICKIES_FOLDER"); env != "" {
		cfg.NotesFolder = env
	}
	if env := os.Getenv("STICKIES_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}
