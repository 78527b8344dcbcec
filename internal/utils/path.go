package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates word lists relative to the running binary
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

	// Resolve any symlinks to get the actual binary location
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
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordkit")
		}
		return filepath.Join(homeDir, ".config", "wordkit")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordkit")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordkit")
	default:
		return filepath.Join(homeDir, ".config", "wordkit")
	}
}

// GetDataPath resolves a word list file or a directory holding word lists.
// It tries, in order:
// 1. The path as given (absolute or relative to the working directory)
// 2. Relative to the executable directory
// 3. data/ next to the executable, its parent, and the config directory
func (pr *PathResolver) GetDataPath(userSpecifiedPath string) (string, error) {
	var candidates []string
	if userSpecifiedPath != "" {
		candidates = append(candidates, userSpecifiedPath)
		if !filepath.IsAbs(userSpecifiedPath) {
			candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
		}
	}
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)

	for _, path := range candidates {
		if isDataPath(path) {
			log.Debugf("Found word lists at: %s", path)
			return path, nil
		}
		log.Debugf("Data path candidate not valid: %s", path)
	}
	return "", &os.PathError{Op: "resolve", Path: userSpecifiedPath, Err: os.ErrNotExist}
}

// isDataPath accepts a regular file or a directory with at least one word list
func isDataPath(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}
	for _, pattern := range []string{"*.tsv", "*.txt"} {
		if matches, err := filepath.Glob(filepath.Join(path, pattern)); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}
