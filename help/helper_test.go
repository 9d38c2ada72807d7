package help

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/ops")
	assert.Equal(t, "/home/ops", HomeDir())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/ops")
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, filepath.Join("/home/ops", ".config", "supmet", "config.yaml"), DefaultConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg")
	assert.Equal(t, filepath.Join("/etc/xdg", "supmet", "config.yaml"), DefaultConfigPath())
}
