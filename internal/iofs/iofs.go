// Package iofs prepares the file system for dwhetl: directories,
// config.yaml and catalog.yaml.
package iofs

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/gnames/dwhetl/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed catalog.yaml
var CatalogYAML string

// EnsureDirs creates config and log directories if they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return touchFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureCatalogFile writes the default catalog.yaml unless it exists.
func EnsureCatalogFile(homeDir string) error {
	return touchFile(config.CatalogFilePath(homeDir), CatalogYAML)
}

// touchFile writes content to path. An existing file is left as is.
func touchFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	slog.Info("Created default file", "path", path)

	return nil
}
