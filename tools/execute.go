package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// interpreters maps source-file extensions to the command that runs them.
var interpreters = map[string][]string{
	".py": {"python3"},
	".js": {"node"},
	".sh": {"bash"},
	".rb": {"ruby"},
	".go": {"go", "run"},
}

// executeMaxOutput caps the combined stdout/stderr returned to the model.
const executeMaxOutput = 32 << 10 // 32 KB

// SourceRunner executes a source file with the interpreter inferred from
// its extension. Each run gets a fresh scratch working directory and a
// wall-clock timeout; combined output is size-capped. This is process
// isolation only, not a security sandbox.
type SourceRunner struct {
	Timeout time.Duration
	WorkDir string // parent for scratch dirs; os.TempDir() when empty
}

// NewSourceRunner creates the execute_source_file tool.
func NewSourceRunner(timeout time.Duration) *SourceRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SourceRunner{Timeout: timeout}
}

func (r *SourceRunner) Name() string {
	return "execute_source_file"
}

func (r *SourceRunner) Description() string {
	return "Execute a source file (python, javascript, bash, ruby or go) and " +
		"return its combined stdout and stderr. Use this to run code attached " +
		"to a task."
}

func (r *SourceRunner) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path of the source file to execute.",
			},
		},
		"required":             []string{"file_path"},
		"additionalProperties": false,
	}
}

func (r *SourceRunner) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(args.FilePath))
	argv, ok := interpreters[ext]
	if !ok {
		return "", fmt.Errorf("no interpreter registered for %q files", ext)
	}

	abs, err := filepath.Abs(args.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("source file not accessible: %w", err)
	}

	parent := r.WorkDir
	if parent == "" {
		parent = os.TempDir()
	}
	scratch := filepath.Join(parent, "agent-run-"+uuid.New().String())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	argv = append(append([]string{}, argv...), abs)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = scratch

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()

	output := out.String()
	if len(output) > executeMaxOutput {
		output = output[:executeMaxOutput] + "\n[output truncated]"
	}

	if runCtx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("execution timed out after %s; partial output:\n%s", r.Timeout, output)
	}
	if runErr != nil {
		// Non-zero exit is a result the model should see, not a tool failure.
		return fmt.Sprintf("process exited with error: %v\n\n%s", runErr, output), nil
	}
	return output, nil
}
