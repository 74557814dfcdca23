package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmsim/internal/sched"
)

func TestBuildRoot(t *testing.T) {
	cmd := buildRoot()
	require.NotNil(t, cmd)

	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("scale"))
	assert.NotNil(t, cmd.Flags().Lookup("trace"))
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
	assert.Equal(t, "1000", cmd.Flags().Lookup("scale").DefValue)
	assert.NotNil(t, cmd.RunE)
}

func TestRenderFeasible(t *testing.T) {
	res := sched.Result{
		Feasible:    true,
		Preemptions: map[sched.TaskID]int64{0: 0, 1: 2},
	}
	assert.Equal(t, "1\n0,2", render(res, 2))
}

func TestRenderInfeasible(t *testing.T) {
	res := sched.Result{
		Feasible:    false,
		Preemptions: map[sched.TaskID]int64{0: 3},
	}
	assert.Equal(t, "0", render(res, 1))
}

func TestRunFeasibleWorkload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,4,4\n2,6,6\n"), 0o644))

	cmd := buildRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path, "--scale", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1\n0,0\n", out.String())
}

func TestRunInfeasibleWorkload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,4,4\n3,5,5\n"), 0o644))

	cmd := buildRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path, "--scale", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0\n", out.String())
}

func TestRunMalformedWorkload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,4\n"), 0o644))

	cmd := buildRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{path})

	require.Error(t, cmd.Execute())
}
