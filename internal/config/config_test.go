package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	logger := logrus.New()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), logger)
	require.NoError(t, err)

	assert.Equal(t, "mifosx-mcp", cfg.Server.Name)
	assert.Equal(t, "default", cfg.Fineract.TenantID)
	assert.Equal(t, int64(29), cfg.Codes.AddressType)
	assert.False(t, cfg.HTTP.Enabled)
}

func TestLoadConfig_FromFile(t *testing.T) {
	content := `
server:
  name: mifosx-mcp
  version: 2.0.0
fineract:
  base_url: https://fineract.example.com:8443
  basic_token: bWlmb3M6cGFzc3dvcmQ=
  tenant_id: sandbox
  timeout_sec: 10
codes:
  gender: 41
http:
  enabled: true
  port: 9100
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path, logrus.New())
	require.NoError(t, err)

	assert.Equal(t, "https://fineract.example.com:8443", cfg.Fineract.BaseURL)
	assert.Equal(t, "sandbox", cfg.Fineract.TenantID)
	assert.Equal(t, 10, cfg.Fineract.TimeoutSec)
	assert.Equal(t, int64(41), cfg.Codes.Gender)
	// untouched groups keep their defaults
	assert.Equal(t, int64(28), cfg.Codes.Country)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FINERACT_BASE_URL", "https://override.example.com")
	t.Setenv("FINERACT_TENANT_ID", "tenant-two")
	t.Setenv("HTTP_PORT", "9200")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), logrus.New())
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.com", cfg.Fineract.BaseURL)
	assert.Equal(t, "tenant-two", cfg.Fineract.TenantID)
	assert.Equal(t, 9200, cfg.HTTP.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	content := `
fineract:
  base_url: ""
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path, logrus.New())
	assert.Error(t, err)
}
