package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, int64(5<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data/workouts.json", cfg.Storage.Path)
	assert.Equal(t, "workouts.json", cfg.S3.ObjectKey)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "http://localhost:3000", cfg.Client.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
  static_dir: "dist"
storage:
  driver: mongo
database:
  name: gym
client:
  timeout: 3s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("DATABASE_NAME", "from_env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "dist", cfg.Server.StaticDir)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "from_env", cfg.Database.Name, "env wins over the file")
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("S3_BUCKET_NAME=workouts-bucket\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("S3_BUCKET_NAME") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "workouts-bucket", cfg.S3.BucketName)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
