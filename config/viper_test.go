package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInitFromFile(t *testing.T) {
	path := writeConfig(t, `
workers = 4
lang = "ru"
output = "archive"
render_html = true

[log]
level = "debug"

[download]
connect_timeout = "3s"
proxy = "socks5://127.0.0.1:1080"
`)
	require.NoError(t, Init(context.Background(), path))

	c := C()
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "ru", c.Lang)
	assert.Equal(t, "archive", c.Output)
	assert.True(t, c.RenderHTML)
	assert.True(t, c.Comments)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 3*time.Second, c.Download.ConnectTimeout)
	assert.Equal(t, "socks5://127.0.0.1:1080", c.Download.Proxy)
}

func TestInitEnvOverrides(t *testing.T) {
	path := writeConfig(t, "workers = 2\n")
	t.Setenv("POSTSAVER_WORKERS", "6")
	t.Setenv("POSTSAVER_LOG_LEVEL", "warn")

	require.NoError(t, Init(context.Background(), path))
	assert.Equal(t, 6, C().Workers)
	assert.Equal(t, "warn", C().Log.Level)
}

func TestInitRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "workers = 0\n")
	assert.ErrorContains(t, Init(context.Background(), path), "workers")

	path = writeConfig(t, "workers = 1\n[log]\nlevel = \"loud\"\n")
	assert.ErrorContains(t, Init(context.Background(), path), "log level")
}

func TestInitMissingExplicitFile(t *testing.T) {
	err := Init(context.Background(), filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
