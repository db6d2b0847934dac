package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultAPIEndpoint    = "https://minmod.isi.edu/api/v1"
	defaultSPARQLEndpoint = "https://minmod.isi.edu/sparql"
	defaultCacheCapacity  = 10
	defaultCacheRetention = 72 * time.Hour
	defaultMaxSites       = 5000
	defaultFetchTimeout   = 60 * time.Second
	defaultMaxConcurrency = 4
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Aggregation configures the proximity aggregation core
	Aggregation *AggregationConfig `json:"aggregation" yaml:"aggregation"`

	// DataService configures the MinMod REST and SPARQL backends
	DataService *DataServiceConfig `json:"dataService" yaml:"dataService"`

	// Metrics configures the Prometheus collector
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// AggregationConfig defines the proximity aggregation parameters.
type AggregationConfig struct {
	// Default proximity threshold, expressed in Unit. Zero disables aggregation.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Distance unit shared by the distance engine and the threshold: "km" or "mi"
	Unit string `json:"unit" yaml:"unit"`

	// Maximum number of distance matrices kept in the cache
	CacheCapacity int `json:"cacheCapacity" yaml:"cacheCapacity"`

	// Entries not accessed within this window are recomputed
	CacheRetention time.Duration `json:"cacheRetention" yaml:"cacheRetention"`

	// Upper bound on sites per request; the matrix costs O(n^2)
	MaxSites int `json:"maxSites" yaml:"maxSites"`
}

// DataServiceConfig defines the MinMod backend endpoints.
type DataServiceConfig struct {
	APIEndpoint        string        `json:"apiEndpoint" yaml:"apiEndpoint"`
	SPARQLEndpoint     string        `json:"sparqlEndpoint" yaml:"sparqlEndpoint"`
	InsecureSkipVerify bool          `json:"insecureSkipVerify" yaml:"insecureSkipVerify"`
	Timeout            time.Duration `json:"timeout" yaml:"timeout"`

	// Number of commodities fetched in parallel
	MaxConcurrency int `json:"maxConcurrency" yaml:"maxConcurrency"`

	// Bucket URL of site table snapshots, e.g. file:///data/snapshots.
	// When set, sites are read from the snapshots instead of the live API.
	SnapshotURL string `json:"snapshotURL" yaml:"snapshotURL"`
}

// MetricsConfig defines the Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: DATASERVICE_APIENDPOINT -> dataService.apiEndpoint (not dataservice.apiendpoint)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills optional sections and zero values with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Aggregation == nil {
		c.Aggregation = &AggregationConfig{}
	}
	if strings.TrimSpace(c.Aggregation.Unit) == "" {
		c.Aggregation.Unit = "km"
	}
	if c.Aggregation.CacheCapacity <= 0 {
		c.Aggregation.CacheCapacity = defaultCacheCapacity
	}
	if c.Aggregation.CacheRetention <= 0 {
		c.Aggregation.CacheRetention = defaultCacheRetention
	}
	if c.Aggregation.MaxSites <= 0 {
		c.Aggregation.MaxSites = defaultMaxSites
	}

	if c.DataService == nil {
		c.DataService = &DataServiceConfig{}
	}
	if strings.TrimSpace(c.DataService.APIEndpoint) == "" {
		c.DataService.APIEndpoint = defaultAPIEndpoint
	}
	if strings.TrimSpace(c.DataService.SPARQLEndpoint) == "" {
		c.DataService.SPARQLEndpoint = defaultSPARQLEndpoint
	}
	if c.DataService.Timeout <= 0 {
		c.DataService.Timeout = defaultFetchTimeout
	}
	if c.DataService.MaxConcurrency <= 0 {
		c.DataService.MaxConcurrency = defaultMaxConcurrency
	}

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{Enabled: true}
	}
	if strings.TrimSpace(c.Metrics.Namespace) == "" {
		c.Metrics.Namespace = "minmod"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
