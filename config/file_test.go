package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/habiliai/memorybank/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorybank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  logLevel: debug
memory:
  sqliteEnabled: true
  sqlitePath: /tmp/memorybank.db
  searchTopK: 10
server:
  port: 8080
`), 0644))

	conf := config.NewConfig()
	require.NoError(t, conf.LoadFromFile(path))

	assert.Equal(t, "debug", conf.Log.LogLevel)
	assert.True(t, conf.Memory.SqliteEnabled)
	assert.Equal(t, "/tmp/memorybank.db", conf.Memory.SqlitePath)
	assert.Equal(t, 10, conf.Memory.SearchTopK)
	assert.Equal(t, 8080, conf.Server.Port)

	// untouched keys keep their defaults
	assert.Equal(t, 0.9, conf.Memory.DuplicateThreshold)
	assert.Equal(t, 0.7, conf.Memory.SemanticWeight)
	assert.Equal(t, "text-embedding-3-small", conf.Model.EmbeddingModel)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	conf := config.NewConfig()
	require.Error(t, conf.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestNewConfig_Defaults(t *testing.T) {
	conf := config.NewConfig()

	assert.Equal(t, "info", conf.Log.LogLevel)
	assert.Equal(t, 0.9, conf.Memory.DuplicateThreshold)
	assert.Equal(t, 0.7, conf.Memory.SemanticWeight)
	assert.Equal(t, 0.2, conf.Memory.KeywordWeight)
	assert.Equal(t, 0.1, conf.Memory.ImportanceWeight)
	assert.Equal(t, 5, conf.Memory.SearchTopK)
	assert.Equal(t, 3, conf.Memory.ChatTopK)
	assert.Equal(t, 3001, conf.Server.Port)
}
