package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".", c.Dir)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 8080, c.HTTP.Port)
	assert.Equal(t, 24*time.Hour, c.Redis.TTL)
	assert.Equal(t, "rivercross:", c.Redis.Prefix)
	assert.Equal(t, DefaultPathLimit, c.Solve.PathLimit, "path enumeration is bounded by default")
	assert.Equal(t, DefaultPathLimit, c.Solve.MaxPaths)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
dir: ./puzzles
log:
  level: debug
http:
  port: 9000
redis:
  addr: localhost:6379
  ttl: 10m
solve:
  path_limit: 50
`), 0o644))

	t.Setenv("RIVERCROSS_HTTP_PORT", "9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("limit", 0, "")
	require.NoError(t, flags.Parse([]string{"--limit", "7"}))

	c, err := Load(file, flags)
	require.NoError(t, err)

	assert.Equal(t, "./puzzles", c.Dir, "file")
	assert.Equal(t, "debug", c.Log.Level, "file")
	assert.Equal(t, 9100, c.HTTP.Port, "env beats file")
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, 10*time.Minute, c.Redis.TTL)
	assert.Equal(t, 7, c.Solve.PathLimit, "flag beats file")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_NegativeLimit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RIVERCROSS_SOLVE_PATH_LIMIT", "-1")

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "path_limit")
}

func TestLoad_CacheFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("cache", false, "")
	require.NoError(t, flags.Parse([]string{"--cache"}))

	c, err := Load("", flags)
	require.NoError(t, err)
	assert.True(t, c.Solve.Cache)
}

func TestLoad_UnboundedPathsAreExplicit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RIVERCROSS_SOLVE_PATH_LIMIT", "0")
	t.Setenv("RIVERCROSS_SOLVE_MAX_PATHS", "0")

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Zero(t, c.Solve.PathLimit)
	assert.Zero(t, c.Solve.MaxPaths)
}

func TestLoad_NegativeMaxPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RIVERCROSS_SOLVE_MAX_PATHS", "-5")

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "max_paths")
}
