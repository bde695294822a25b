package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stepwise/pkg/gallery"
)

func parseInput(t *testing.T, args ...string) *inputOpts {
	t.Helper()
	var opts inputOpts
	cmd := &cobra.Command{Use: "x"}
	bindInputFlags(cmd, &opts)
	require.NoError(t, cmd.ParseFlags(args))
	return &opts
}

func TestInputRequestDefaults(t *testing.T) {
	req, pace, err := parseInput(t, "-a", "prim").request()
	require.NoError(t, err)
	assert.Equal(t, "prim", req.Algorithm)
	assert.Equal(t, gallery.DefaultWeightedEdges, req.Edges)
	assert.Equal(t, gallery.DefaultSource, req.Source)
	assert.Equal(t, 1.0, pace)
}

func TestInputRequestOverrides(t *testing.T) {
	req, _, err := parseInput(t, "-a", "bfs", "--edges", "X Y", "-s", "X").request()
	require.NoError(t, err)
	assert.Equal(t, "X Y", req.Edges)
	assert.Equal(t, "X", req.Source)
}

func TestInputRequestRecursionFunction(t *testing.T) {
	req, _, err := parseInput(t, "-a", "recursion", "--function", "gcd", "--gcd-a", "12", "--gcd-b", "8").request()
	require.NoError(t, err)
	assert.Equal(t, "gcd", req.Resolve())
	assert.Equal(t, 12, req.A)
	assert.Equal(t, 8, req.B)
}

func TestInputRequestEdgesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte("P Q\nQ R"), 0o644))

	req, _, err := parseInput(t, "-a", "dfs", "--edges-file", path, "-s", "P").request()
	require.NoError(t, err)
	assert.Equal(t, "P Q\nQ R", req.Edges)
}

func TestInputRequestScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.toml")
	data := `
[[scenario]]
name = "small-hanoi"
algorithm = "recursion"
function = "toh"
n = 2
from = "L"
to = "R"
aux = "M"
pace_scale = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	req, pace, err := parseInput(t, "--scenarios", path, "--scenario", "small-hanoi", "--n", "3").request()
	require.NoError(t, err)
	assert.Equal(t, "toh", req.Resolve())
	assert.Equal(t, 3, req.N, "explicit flag overrides the scenario")
	assert.Equal(t, "L", req.From)
	assert.Equal(t, 0.5, pace)
}

func TestInputRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nothing", nil},
		{"unknown algorithm", []string{"-a", "quicksort"}},
		{"scenario without file", []string{"--scenario", "x"}},
		{"missing edges file", []string{"-a", "bfs", "--edges-file", "/nonexistent/graph.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseInput(t, tt.args...).request()
			assert.Error(t, err)
		})
	}
}
