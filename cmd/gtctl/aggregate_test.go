package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minmod/internal/domain/entity"
	"minmod/internal/infra/sitetable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, commodity string, sites []entity.SiteRecord) string {
	t.Helper()

	dir := t.TempDir()
	loader, err := sitetable.OpenCSVLoader(context.Background(), "file://"+dir)
	require.NoError(t, err)
	defer loader.Close()

	require.NoError(t, loader.Save(context.Background(), sitetable.SnapshotKey(commodity), sites))

	return "file://" + dir
}

func snapshotSites() []entity.SiteRecord {
	return []entity.SiteRecord{
		{ID: "ms:A", Name: "A", Lat: 0, Lon: 0, Tonnage: 10, Grade: 1},
		{ID: "ms:B", Name: "B", Lat: 0, Lon: 0.001, Tonnage: 20, Grade: 2},
		{ID: "ms:C", Name: "C", Lat: 45, Lon: 45, Tonnage: 5, Grade: 3},
	}
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestAggregateCmd_CSV(t *testing.T) {
	source := writeSnapshot(t, "nickel", snapshotSites())

	stdout, stderr, err := runCmd(t, "aggregate", "--source", source, "-c", "Nickel", "-t", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(sitetable.GroupHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "30,1.6666666666666667,"))
	assert.Contains(t, lines[1], "A; B")
	assert.Contains(t, stderr, "3 of 3 sites merged into 2 groups at 1 km (0 flagged)")
}

func TestAggregateCmd_DefaultThresholdKeepsSitesApart(t *testing.T) {
	source := writeSnapshot(t, "nickel", snapshotSites())

	stdout, _, err := runCmd(t, "aggregate", "--source", source, "-c", "nickel", "-f", "json")
	require.NoError(t, err)

	var result struct {
		Groups  []map[string]any `json:"groups"`
		Summary struct {
			Threshold float64 `json:"threshold"`
			Groups    int     `json:"groups"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Len(t, result.Groups, 3)
	assert.Zero(t, result.Summary.Threshold)
}

func TestAggregateCmd_GeoJSONToFile(t *testing.T) {
	source := writeSnapshot(t, "nickel", snapshotSites())
	out := filepath.Join(t.TempDir(), "groups.geojson")

	_, _, err := runCmd(t, "aggregate", "--source", source, "-c", "nickel", "-t", "2", "--unit", "mi", "-f", "geojson", "-o", out)
	require.NoError(t, err)

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"FeatureCollection"`)
}

func TestAggregateCmd_Errors(t *testing.T) {
	source := writeSnapshot(t, "nickel", snapshotSites())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing commodity flag", args: []string{"aggregate", "--source", source}, want: `required flag(s) "commodity" not set`},
		{name: "unknown format", args: []string{"aggregate", "--source", source, "-c", "nickel", "-f", "xml"}, want: `unsupported format "xml"`},
		{name: "unknown unit", args: []string{"aggregate", "--source", source, "-c", "nickel", "--unit", "furlong"}, want: "unknown distance unit"},
		{name: "negative threshold", args: []string{"aggregate", "--source", source, "-c", "nickel", "--threshold=-1"}, want: "non-negative"},
		{name: "no snapshot", args: []string{"aggregate", "--source", source, "-c", "zinc"}, want: "No grade-tonnage data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
