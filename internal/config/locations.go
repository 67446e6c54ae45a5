package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/druarnfield/mcp11/internal/serverconfig"
)

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "agent11")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".agent11")
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Roaming", "agent11")
	}
	return filepath.Join(home, ".agent11")
}

func ConfigFilePath() string {
	exe, err := os.Executable()
	if err == nil {
		adjacent := filepath.Join(filepath.Dir(exe), "mcp11.toml")
		if _, err := os.Stat(adjacent); err == nil {
			return adjacent
		}
	}
	return filepath.Join(ConfigDir(), "mcp11.toml")
}

func ServerConfigPath() string {
	return filepath.Join(ConfigDir(), serverconfig.FileName)
}

func BackupDir() string {
	return filepath.Join(ConfigDir(), "backups")
}

func LogFilePath() string {
	return filepath.Join(ConfigDir(), "mcp11.log")
}
