package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 8080
database:
  host: db.internal
  port: 3306
  user: leaf
  password: secret
  name: leafdb
minio:
  endpoint: minio.internal:9000
  accessKey: ak
  secretKey: sk
  bucketName: maize-images
  region: us-east-1
inference:
  baseURL: https://models.internal
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://models.internal", cfg.Inference.BaseURL)
	assert.Equal(t, "maize-images", cfg.Minio.BucketName)
	assert.Equal(t, "leaf:secret@tcp(db.internal:3306)/leafdb?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("INFERENCE_BASE_URL", "https://staging-models.internal")
	t.Setenv("MINIO_SECRET_KEY", "rotated")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "https://staging-models.internal", cfg.Inference.BaseURL)
	assert.Equal(t, "rotated", cfg.Minio.SecretKey)
}

func TestValidateRequiresInferenceURL(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 8080
minio:
  endpoint: minio.internal:9000
`))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate(), "a missing inference endpoint must not fall back to a local default")
}

func TestValidateDefaultsBucket(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
minio:
  endpoint: minio.internal:9000
inference:
  baseURL: https://models.internal
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "maize-images", cfg.Minio.BucketName)
}
