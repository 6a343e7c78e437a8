package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds the textvault application configuration
type Config struct {
	AppDir    string
	DataDir   string
	ChatsPath string
	ChatDB    string
}

// GetAppDir returns the textvault application directory for the current OS
func GetAppDir() string {
	if override := os.Getenv("TEXTVAULT_APP_DIR"); override != "" {
		return os.ExpandEnv(override)
	}

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "textvault")
	case "linux":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "textvault")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "textvault")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".textvault")
	}
}

// Load returns a Config instance with env overrides and defaults
func Load() *Config {
	appDir := GetAppDir()

	return &Config{
		AppDir:    appDir,
		DataDir:   getEnv("TEXTVAULT_DATA_DIR", filepath.Join(appDir, "data")),
		ChatsPath: getEnv("TEXTVAULT_CHATS", filepath.Join(appDir, "chats.yaml")),
		ChatDB:    getEnv("TEXTVAULT_CHAT_DB", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
