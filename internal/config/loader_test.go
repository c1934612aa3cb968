package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("KREC_SET", "value")
	t.Setenv("KREC_EMPTY", "")

	assert.Equal(t, "a value b", expandEnv("a ${KREC_SET} b"))
	assert.Equal(t, "value", expandEnv("${KREC_SET:fallback}"))
	assert.Equal(t, "", expandEnv("${KREC_EMPTY:fallback}"))
	assert.Equal(t, "fallback", expandEnv("${KREC_UNSET_VAR:fallback}"))
	assert.Equal(t, "", expandEnv("${KREC_UNSET_VAR:}"))
	assert.Equal(t, "${KREC_UNSET_VAR}", expandEnv("${KREC_UNSET_VAR}"))
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.HTTP.Addr())
	assert.Equal(t, CatalogSourceCSV, cfg.Catalog.Source)
	assert.Equal(t, "data/kdramas.csv", cfg.Catalog.Path)
	assert.Equal(t, 6, cfg.Recommend.DefaultLimit)
	assert.Equal(t, 10*time.Minute, cfg.Recommend.CacheTTL)
	assert.Equal(t, 5, cfg.Recommend.TitleSuggestions)
	assert.False(t, cfg.Cache.Redis.Enabled)
	assert.True(t, cfg.Observability.Metrics.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Security.CORS.AllowedOrigins)
}

func TestLoadFrom_EnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
catalog:
  source: csv
  path: ${KREC_CATALOG:catalog.csv}
recommend:
  default_limit: 8
  cache_ttl: 30s
cache:
  redis:
    enabled: true
`)
	writeFile(t, dir, "config.staging.yaml", `
recommend:
  default_limit: 3
`)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("KREC_CATALOG", "/srv/kdramas.csv")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/kdramas.csv", cfg.Catalog.Path)
	assert.Equal(t, 3, cfg.Recommend.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.Recommend.CacheTTL)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, "kdrama", cfg.Cache.Redis.KeyPrefix)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cases := map[string]string{
		"unknown source": "catalog:\n  source: sqlite\n",
		"blank table":    "catalog:\n  source: postgres\n  table: \"   \"\n",
		"negative limit": "recommend:\n  default_limit: -1\n",
		"broken yaml":    "catalog: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "config.yaml", content)
			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoad_RepositoryConfig(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := LoadFrom(filepath.Join("..", "..", "configs"))
	require.NoError(t, err)
	assert.Equal(t, "kdrama-rec-api", cfg.App.Name)
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.Security.CORS.AllowedMethods)
}
