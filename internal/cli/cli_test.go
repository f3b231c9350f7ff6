package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"growfield/internal/lattice"
	"growfield/internal/mesh"
	"growfield/internal/seed"
	"growfield/internal/sims/grow"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRoot(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func paramLine(key, value string) string {
	return fmt.Sprintf("  %-14s %s\n", key, value)
}

func TestParamsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.toml")
	require.NoError(t, os.WriteFile(path, []byte("grow_seconds = 2\nfps = 10\nseed = \"stick\"\n"), 0o644))

	out, err := execute(t, "params", "--config", path, "--size", "9", "--fps", "20", "-p", "limit_max=6")
	require.NoError(t, err)
	assert.Contains(t, out, "[Lattice] 9x9x9")
	assert.Contains(t, out, paramLine("seed", "stick"))
	assert.Contains(t, out, paramLine("grow_seconds", "2"))
	assert.Contains(t, out, paramLine("fps", "20"))
	assert.Contains(t, out, paramLine("limit_max", "6"))
	assert.Contains(t, out, paramLine("background", "6"))

	out, err = execute(t, "params", "--config", path, "--fps", "20", "-p", "fps=30")
	require.NoError(t, err)
	assert.Contains(t, out, paramLine("fps", "30"), "--set wins over flags")
}

func TestUnchangedFlagsKeepFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 10\ny = 11\nz = 12\n"), 0o644))

	out, err := execute(t, "params", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[Lattice] 10x11x12")
	assert.Contains(t, out, paramLine("fps", "24"))
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--seed", "cone")
	assert.ErrorIs(t, err, seed.ErrUnknownStrategy)

	_, err = execute(t, "params", "-p", "x=0")
	assert.ErrorIs(t, err, lattice.ErrInvalidLattice)

	_, err = execute(t, "params", "--log-level", "loud")
	assert.Error(t, err)

	_, err = execute(t, "params", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "grow.avi")
	obj := filepath.Join(dir, "grow.obj")

	out, err := execute(t, "run", "--size", "9", "--grow-seconds", "1", "--fps", "10",
		"--record", video, "--obj", obj, "--width", "64", "--height", "64")
	require.NoError(t, err)
	assert.Contains(t, out, "ball 9x9x9:")
	assert.Contains(t, out, "video written")

	info, err := os.Stat(video)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	data, err := os.ReadFile(obj)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "o shape\n"))
	assert.Contains(t, text, "\nv ")
	assert.Contains(t, text, "\nf ")
}

func TestImmediateRunRecordsOneFrame(t *testing.T) {
	video := filepath.Join(t.TempDir(), "grow.avi")
	out, err := execute(t, "run", "--size", "9", "--immediate", "--record", video, "--width", "32", "--height", "32")
	require.NoError(t, err)
	assert.Contains(t, out, "1 ticks")
	assert.Contains(t, out, "frames=1")
}

func TestSweepGrid(t *testing.T) {
	base := grow.DefaultConfig()
	base.Immediate = true
	base.Mode = "interactive"
	jobs := sweepGrid(base, []int{8, 12}, []float64{1}, []float64{10, 20})
	require.Len(t, jobs, 4)
	for _, c := range jobs {
		assert.Equal(t, "deterministic", c.Mode)
		assert.False(t, c.Immediate)
		assert.Equal(t, c.X, c.Z)
	}
	assert.Equal(t, 12, jobs[3].Y)
	assert.Equal(t, 20.0, jobs[3].FPS)
	assert.Empty(t, sweepGrid(base, nil, []float64{1}, []float64{1}))
}

func TestSweepRunsEveryJob(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	jobs := sweepGrid(grow.DefaultConfig(), []int{11, 9}, []float64{1}, []float64{10, 5})

	all := sweep(context.Background(), jobs, 3, log)
	require.Len(t, all, 4)
	for i, c := range all {
		require.NoError(t, c.err, c.String())
		assert.Positive(t, c.ticks)
		assert.Positive(t, c.vertices)
		assert.Positive(t, c.faces)
		assert.Positive(t, c.radius)
		if i > 0 {
			assert.LessOrEqual(t, all[i-1].cfg.X, c.cfg.X)
		}
	}
	assert.Equal(t, 9, all[0].cfg.X)
	assert.Equal(t, 5.0, all[0].cfg.FPS, "a lower frame rate takes bigger steps")
	assert.Len(t, hook.AllEntries(), 4)
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	log, _ := test.NewNullLogger()
	jobs := sweepGrid(grow.DefaultConfig(), []int{9}, []float64{1}, []float64{10})
	for _, c := range sweep(ctx, jobs, 1, log) {
		assert.ErrorIs(t, c.err, context.Canceled)
	}
}

func TestRadiusStats(t *testing.T) {
	m := mesh.Mesh{Vertices: []r3.Vec{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	}}
	mean, std := radiusStats(m)
	assert.InDelta(t, 1, mean, 1e-12)
	assert.InDelta(t, 0, std, 1e-12)

	mean, std = radiusStats(mesh.Mesh{})
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
