package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"aggregation": map[string]any{
			"cacheCapacity":  10,
			"cacheRetention": "72h",
		},
		"dataService": map[string]any{
			"apiEndpoint":        "",
			"insecureSkipVerify": false,
		},
		"env": map[string]any{
			"log": map[string]any{
				"level": "info",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "AGGREGATION_CACHECAPACITY", want: "aggregation.cacheCapacity"},
		{envKey: "AGGREGATION_CACHE_RETENTION", want: "aggregation.cache.retention"},
		{envKey: "DATASERVICE_APIENDPOINT", want: "dataService.apiEndpoint"},
		{envKey: "DATASERVICE_INSECURESKIPVERIFY", want: "dataService.insecureSkipVerify"},
		{envKey: "ENV_LOG_LEVEL", want: "env.log.level"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
