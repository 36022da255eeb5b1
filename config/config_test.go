package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "querygen", cfg.ServiceName)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 32, cfg.MaxQueryDepth)
	assert.False(t, cfg.TrailingPagination)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DEFAULT_DIALECT", "mysql")
	t.Setenv("MAX_QUERY_DEPTH", "8")
	t.Setenv("LENIENT_DIALECT_GAPS", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENVIRONMENT", ReleaseMode)

	cfg := Load()
	assert.Equal(t, "mysql", cfg.DefaultDialect)
	assert.Equal(t, 8, cfg.MaxQueryDepth)
	assert.True(t, cfg.LenientDialectGaps)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "info", cfg.LogLevel())
}

func TestGeneratorOptions(t *testing.T) {
	assert.Len(t, Config{}.GeneratorOptions(), 0)
	assert.Len(t, Config{MaxQueryDepth: 4, TrailingPagination: true, LenientDialectGaps: true}.GeneratorOptions(), 3)
}
