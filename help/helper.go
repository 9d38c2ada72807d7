package help

import (
	"os"
	"os/user"
	"path/filepath"
)

func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	// Windows fallback
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "." // last resort: current dir
}

// DefaultConfigPath is $XDG_CONFIG_HOME/supmet/config.yaml, falling back to
// ~/.config/supmet/config.yaml.
func DefaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(HomeDir(), ".config")
	}
	return filepath.Join(base, "supmet", "config.yaml")
}
