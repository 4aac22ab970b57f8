package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}

func defaultDataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "tada")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tada"
	}
	return filepath.Join(home, ".local", "share", "tada")
}

// findUserConfigFile returns the first existing user config file, or "".
func findUserConfigFile() string {
	var candidates []string
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		candidates = append(candidates, filepath.Join(d, "tada", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "tada", "config.toml"),
			filepath.Join(home, ".tada", "config.toml"),
		)
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c
		}
	}
	return ""
}
