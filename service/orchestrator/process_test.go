//go:build !windows

package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sweeper/model/trial"
	"github.com/viant/sweeper/service/sink"
	"github.com/viant/sweeper/service/supervisor"
)

// echoBuilder runs a stub printing a record derived from trial.Spec only.
var echoBuilder = supervisor.BuilderFunc(func(ctx context.Context, spec trial.Spec) (*exec.Cmd, error) {
	return exec.Command("sh", "-c", `printf '%s,%s\n' "$1" "$2"`, "stub", spec.Name(), "1500"), nil
})

func readDir(t *testing.T, dir string) map[string]string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	ret := map[string]string{}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		ret[entry.Name()] = string(data)
	}
	return ret
}

func TestService_Run_Processes(t *testing.T) {
	resultDir := t.TempDir()
	namer := sink.New(resultDir, nil)
	srv, err := New(
		WithCapacity(1),
		WithSupervisor(supervisor.New(echoBuilder, supervisor.WithTimeout(10*time.Second))),
		WithNamer(namer),
	)
	require.NoError(t, err)

	report, err := srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Progress.Finished())
	assert.Equal(t, 4, report.Count(trial.StatusCompleted))

	first := readDir(t, resultDir)
	assert.Equal(t, map[string]string{
		"facebook-random-128-2-256": "facebook-random-128-2-256,1500\n",
		"facebook-random-128-2-512": "facebook-random-128-2-512,1500\n",
		"facebook-spar-128-2-256":   "facebook-spar-128-2-256,1500\n",
		"facebook-spar-128-2-512":   "facebook-spar-128-2-512,1500\n",
	}, first)

	_, err = srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)
	assert.Equal(t, first, readDir(t, resultDir))
}

func TestService_Run_ProcessTimeout(t *testing.T) {
	slow := supervisor.BuilderFunc(func(ctx context.Context, spec trial.Spec) (*exec.Cmd, error) {
		if spec.Nodes == 512 {
			return exec.Command("sh", "-c", "sleep 30"), nil
		}
		return exec.Command("sh", "-c", "echo 1,1"), nil
	})
	srv, err := New(
		WithCapacity(2),
		WithSupervisor(supervisor.New(slow, supervisor.WithTimeout(300*time.Millisecond))),
		WithNamer(sink.New(t.TempDir(), nil)),
	)
	require.NoError(t, err)

	report, err := srv.Run(context.Background(), "facebook", facebookSpecs(t))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(trial.StatusCompleted))
	assert.Equal(t, 2, report.Count(trial.StatusTimedOut))
	assert.Equal(t, 2, report.Available)
}
