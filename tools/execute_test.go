package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func requireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

func TestSourceRunner(t *testing.T) {
	t.Run("runs a shell script and captures output", func(t *testing.T) {
		requireBash(t)
		path := writeScript(t, "hello.sh", "echo hello from script\n")
		runner := NewSourceRunner(10 * time.Second)

		out, err := callTool(t, runner, fmt.Sprintf(`{"file_path": %q}`, path))
		require.NoError(t, err)
		assert.Contains(t, out, "hello from script")
	})

	t.Run("non-zero exit is returned as output", func(t *testing.T) {
		requireBash(t)
		path := writeScript(t, "fail.sh", "echo before failure\nexit 3\n")
		runner := NewSourceRunner(10 * time.Second)

		out, err := callTool(t, runner, fmt.Sprintf(`{"file_path": %q}`, path))
		require.NoError(t, err)
		assert.Contains(t, out, "process exited with error")
		assert.Contains(t, out, "before failure")
	})

	t.Run("timeout kills the process", func(t *testing.T) {
		requireBash(t)
		path := writeScript(t, "sleep.sh", "sleep 30\n")
		runner := NewSourceRunner(500 * time.Millisecond)

		_, err := callTool(t, runner, fmt.Sprintf(`{"file_path": %q}`, path))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("unknown extension is rejected", func(t *testing.T) {
		path := writeScript(t, "prog.zig", "")
		runner := NewSourceRunner(time.Second)

		_, err := callTool(t, runner, fmt.Sprintf(`{"file_path": %q}`, path))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no interpreter")
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		runner := NewSourceRunner(time.Second)
		_, err := callTool(t, runner, `{"file_path": "/does/not/exist.sh"}`)
		require.Error(t, err)
	})

	t.Run("scratch dir is cleaned up", func(t *testing.T) {
		requireBash(t)
		parent := t.TempDir()
		path := writeScript(t, "touchy.sh", "touch leftover.txt\n")
		runner := NewSourceRunner(10 * time.Second)
		runner.WorkDir = parent

		_, err := callTool(t, runner, fmt.Sprintf(`{"file_path": %q}`, path))
		require.NoError(t, err)

		entries, err := os.ReadDir(parent)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
