package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary and usage files relative to the places the
// wordhood binary is usually run from.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordhood")
		}
		return filepath.Join(homeDir, ".config", "wordhood")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordhood")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordhood")
	default:
		return filepath.Join(homeDir, ".config", "wordhood")
	}
}

// Candidates lists where path is looked for, in order: as given, next to
// the executable, under the working directory and in the config directory.
// Absolute paths have a single candidate.
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	candidates := []string{path, filepath.Join(pr.executableDir, path)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	return append(candidates, filepath.Join(pr.configDir, path))
}

// Resolve returns the first existing candidate for path, file or directory.
func (pr *PathResolver) Resolve(path string) (string, error) {
	for _, candidate := range pr.Candidates(path) {
		if FileExists(candidate) {
			log.Debugf("Resolved %s to %s", path, candidate)
			return candidate, nil
		}
		log.Debugf("Path candidate not found: %s", candidate)
	}
	return "", os.ErrNotExist
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
