package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `env:
  env: test
  log:
    level: debug
aggregation:
  threshold: 5
  unit: mi
  cacheCapacity: 3
  cacheRetention: 2h
dataService:
  apiEndpoint: http://localhost:9000/api/v1
`

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "unittest.yaml"), []byte(testConfigYAML), 0o644))
	t.Chdir(tmpDir)
	t.Setenv("AGGREGATION_THRESHOLD", "12.5")
	t.Setenv("DATASERVICE_MAXCONCURRENCY", "8")

	cfg, err := LoadWithEnv[Config]("unittest")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	require.NotNil(t, cfg.Aggregation)
	assert.InDelta(t, 12.5, cfg.Aggregation.Threshold, 1e-9)
	assert.Equal(t, "mi", cfg.Aggregation.Unit)
	assert.Equal(t, 3, cfg.Aggregation.CacheCapacity)
	assert.Equal(t, 2*time.Hour, cfg.Aggregation.CacheRetention)
	require.NotNil(t, cfg.DataService)
	assert.Equal(t, "http://localhost:9000/api/v1", cfg.DataService.APIEndpoint)
	assert.Equal(t, 8, cfg.DataService.MaxConcurrency)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	require.NotNil(t, cfg.Aggregation)
	assert.Equal(t, "km", cfg.Aggregation.Unit)
	assert.Equal(t, defaultCacheCapacity, cfg.Aggregation.CacheCapacity)
	assert.Equal(t, defaultCacheRetention, cfg.Aggregation.CacheRetention)
	assert.Equal(t, defaultMaxSites, cfg.Aggregation.MaxSites)
	assert.Zero(t, cfg.Aggregation.Threshold)

	require.NotNil(t, cfg.DataService)
	assert.Equal(t, defaultAPIEndpoint, cfg.DataService.APIEndpoint)
	assert.Equal(t, defaultSPARQLEndpoint, cfg.DataService.SPARQLEndpoint)
	assert.Equal(t, defaultFetchTimeout, cfg.DataService.Timeout)
	assert.Equal(t, defaultMaxConcurrency, cfg.DataService.MaxConcurrency)

	require.NotNil(t, cfg.Metrics)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "minmod", cfg.Metrics.Namespace)
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Aggregation: &AggregationConfig{Unit: "mi", CacheCapacity: 2, CacheRetention: time.Minute, MaxSites: 10},
		Metrics:     &MetricsConfig{Enabled: false, Namespace: "gt"},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "mi", cfg.Aggregation.Unit)
	assert.Equal(t, 2, cfg.Aggregation.CacheCapacity)
	assert.Equal(t, time.Minute, cfg.Aggregation.CacheRetention)
	assert.Equal(t, 10, cfg.Aggregation.MaxSites)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "gt", cfg.Metrics.Namespace)
}
