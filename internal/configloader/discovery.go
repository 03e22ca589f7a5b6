package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

const appDirName = "marcup"

// Scope names the origin of a configuration file.
type Scope string

const (
	ScopeSystem   Scope = "system"
	ScopeUser     Scope = "user"
	ScopeProject  Scope = "project"
	ScopeExplicit Scope = "explicit"
)

// ConfigPaths holds the configuration files found for each scope.
// An empty string means no file exists for that scope.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Layer is one configuration file in merge order.
type Layer struct {
	Scope Scope
	Path  string
}

// Layers returns the non-empty paths from lowest to highest precedence.
func (p *ConfigPaths) Layers() []Layer {
	all := []Layer{
		{ScopeSystem, p.System},
		{ScopeUser, p.User},
		{ScopeProject, p.Project},
		{ScopeExplicit, p.Explicit},
	}
	return slices.DeleteFunc(all, func(l Layer) bool { return l.Path == "" })
}

// ProjectConfigFiles are the names looked up in each directory during the upward search.
// The first match in a directory wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{".marcup.yml", ".marcup.yaml", ".marcup.json"}

// scopeConfigFiles are the names looked up in the system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var scopeConfigFiles = []string{"config.yaml", "config.yml", "config.json"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project configuration files.
// The project file is found by walking up from workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), scopeConfigFiles),
		User:    firstExisting(userConfigDir(), scopeConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDirName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appDirName)
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// firstExisting returns the first regular file dir/name, or "" when none exists.
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); isRegularFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks up from startDir and returns the first project config file.
// The walk ends at a VCS root, the home directory, or the filesystem root, and an
// empty result there is not an error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := absWorkDir(startDir)
	if err != nil {
		return "", err
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstExisting(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsJSONConfig reports whether path names a JSON or JWCC config file.
func IsJSONConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return true
	default:
		return false
	}
}
