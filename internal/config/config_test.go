package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, PlaceholderEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultTimeout, cfg.TimeoutDuration())
	assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
	assert.Equal(t, "t", cfg.Keys.Theme)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `endpoint = "https://example.test/exec"
timeout = "3s"

[keys]
quit = "Q"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/exec", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, filepath.Join(dir, DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, DefaultLogName), cfg.LogPath)
	assert.Equal(t, "Q", cfg.Keys.Quit)
	assert.Equal(t, "j", cfg.Keys.Down)
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("endpoint = ["), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestTimeoutDurationFallback(t *testing.T) {
	for _, v := range []string{"", "soon", "-1s", "0s"} {
		assert.Equal(t, DefaultTimeout, Config{Timeout: v}.TimeoutDuration(), v)
	}
}

func TestLocation(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Config{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	loc, err = Config{Timezone: "Nowhere/Atlantis"}.Location()
	assert.Error(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestResolveConfigPathEnv(t *testing.T) {
	t.Setenv(envConfigPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", ResolveConfigPath())
}
