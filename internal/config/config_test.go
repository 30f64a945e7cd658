package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8000,
		"users_file": "data.json",
		"products_file": "products.json",
		"jwt_secret": "secret"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 72, cfg.SessionTTLHours)
	require.Equal(t, 4096, cfg.MaxSessions)
	require.Equal(t, 300, cfg.CodeTTLSeconds)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadMissingRequired(t *testing.T) {
	cases := map[string]string{
		"port":          `{"users_file":"u","products_file":"p","jwt_secret":"s"}`,
		"users_file":    `{"port":8000,"products_file":"p","jwt_secret":"s"}`,
		"products_file": `{"port":8000,"users_file":"u","jwt_secret":"s"}`,
		"jwt_secret":    `{"port":8000,"users_file":"u","products_file":"p"}`,
	}
	for name, content := range cases {
		_, err := Load(writeConfig(t, content))
		require.Error(t, err, "missing %s must fail", name)
	}
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "not json"))
	require.Error(t, err)
}
