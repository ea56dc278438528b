package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "dwhetl"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/dwhetl by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/dwhetl/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/dwhetl/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CatalogFilePath returns the full path to the catalog.yaml file with
// the statements of the load.
// Returns ~/.config/dwhetl/catalog.yaml by default.
func CatalogFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "catalog.yaml")
}
