package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "APP_PORT=8081\nDB_HOST=db.internal\nDB_NAME=carelink\nJWT_SECRET=s3cret\nJWT_ACCESS_EXPIRY=30m\nNOTIFY_WORKERS=4\nOCR_URL=http://ocr:9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "carelink", cfg.DB.Name)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 4, cfg.Notify.Workers)
	assert.Equal(t, "http://ocr:9000", cfg.OCR.URL)
	assert.Equal(t, 10*time.Second, cfg.OCR.Timeout)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 100, cfg.Notify.QueueSize)
	assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
}
