package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/traclus/internal/traclus/trajio"
)

// writeCorridor writes three parallel horizontal trajectories 0.5 apart.
func writeCorridor(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("traj_id,x,y\n")
	for id := 1; id <= 3; id++ {
		y := 0.5 * float64(id-1)
		for x := 0; x <= 100; x += 10 {
			fmt.Fprintf(&b, "%d,%d,%g\n", id, x, y)
		}
	}
	path := filepath.Join(t.TempDir(), "corridor.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func corridorArgs(input string) []string {
	return []string{
		"-quiet",
		"-input", input,
		"-algorithm", "rdp",
		"-epsilon", "0.5",
		"-min-lines", "3",
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "traclus "))
}

func TestRun_MissingInput(t *testing.T) {
	err := run([]string{"-quiet"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errMissingInput)
}

func TestRun_JSONToStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(corridorArgs(writeCorridor(t)), &out))

	var summary trajio.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, 3, summary.SegmentCount)
	require.Len(t, summary.Clusters, 1)
	assert.Equal(t, []int{1, 2, 3}, summary.Clusters[0].Trajectories)

	rep := summary.Clusters[0].Representative
	require.Len(t, rep, 2)
	assert.InDelta(t, 0.0, rep[0][0], 1e-9)
	assert.InDelta(t, 0.5, rep[0][1], 1e-9)
	assert.InDelta(t, 100.0, rep[1][0], 1e-9)
	assert.InDelta(t, 0.5, rep[1][1], 1e-9)
}

func TestRun_GeoJSONOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "result.geojson")
	args := append(corridorArgs(writeCorridor(t)), "-output", output)
	require.NoError(t, run(args, &bytes.Buffer{}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"representative"`)
}

func TestRun_ConfigFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tuning.json")
	// min_trajectories 4 would reject the three-trajectory corridor.
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"min_trajectories": 4, "cluster_epsilon": 2}`), 0o644))

	var out bytes.Buffer
	args := append(corridorArgs(writeCorridor(t)), "-config", cfgPath)
	require.NoError(t, run(args, &out))

	var summary trajio.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Empty(t, summary.Clusters)
	assert.Equal(t, 1, summary.RemovedClusters)
}

func TestRun_Errors(t *testing.T) {
	input := writeCorridor(t)
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid min lines", args: []string{"-quiet", "-input", input, "-min-lines", "0"}, wantErr: "min_lines"},
		{name: "unknown algorithm", args: []string{"-quiet", "-input", input, "-algorithm", "kmeans"}, wantErr: "algorithm"},
		{name: "missing config", args: []string{"-quiet", "-input", input, "-config", "nope.json"}, wantErr: "config file"},
		{name: "missing input file", args: []string{"-quiet", "-input", "nope.csv"}, wantErr: "open input"},
		{name: "unknown flag", args: []string{"-frobnicate"}, wantErr: "frobnicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTuningConfig_OnlySetFlagsOverride(t *testing.T) {
	opts, err := parseFlags([]string{"-theta", "9"})
	require.NoError(t, err)

	cfg, err := opts.tuningConfig()
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.GetTheta())
	assert.Nil(t, cfg.ClusterEpsilon)
	assert.Nil(t, cfg.Algorithm)
}
