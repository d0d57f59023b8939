package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "replace", cfg.CanceledNavigationResolution)
	assert.Equal(t, "deferred", cfg.URLUpdateStrategy)
	assert.Equal(t, "ignore", cfg.OnSameURLNavigation)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CANCELED_NAVIGATION_RESOLUTION", "computed")
	t.Setenv("URL_UPDATE_STRATEGY", "eager")
	t.Setenv("ON_SAME_URL_NAVIGATION", "reload")
	t.Setenv("SERVER_ADDRESS", ":9999")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "computed", cfg.CanceledNavigationResolution)
	assert.Equal(t, "eager", cfg.URLUpdateStrategy)
	assert.Equal(t, "reload", cfg.OnSameURLNavigation)
	assert.Equal(t, ":9999", cfg.ServerAddress)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Run("bad resolution", func(t *testing.T) {
		t.Setenv("CANCELED_NAVIGATION_RESOLUTION", "sideways")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad url update strategy", func(t *testing.T) {
		t.Setenv("URL_UPDATE_STRATEGY", "sometimes")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("watching without a file", func(t *testing.T) {
		t.Setenv("WATCH_ROUTES", "true")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestLoadRoutes(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "routes.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, `
routes:
  - path: ""
    redirect_to: home
  - path: home
    title: Home
  - path: team
    children:
      - path: ":id"
`)
		loaded, err := LoadRoutes(path)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, "home", loaded[0].RedirectTo)
		assert.Equal(t, ":id", loaded[2].Children[0].Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRoutes(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "routes: [")
		_, err := LoadRoutes(path)
		assert.Error(t, err)
	})

	t.Run("invalid route config", func(t *testing.T) {
		path := writeFile(t, `
routes:
  - path: /leading-slash
`)
		_, err := LoadRoutes(path)
		assert.Error(t, err)
	})
}
