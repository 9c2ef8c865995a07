package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Executor runs plugin executables with a per-call timeout. The
// request travels to the plugin as JSON on stdin and the response
// comes back as JSON on stdout.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates a new Executor with the specified timeout in
// milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{
		timeoutMs: timeoutMs,
	}
}

// Execute runs a plugin with the given request and returns its
// response. The executor's timeout is layered onto the caller's
// context, so a cancelled ctx stops the plugin early.
func (e *Executor) Execute(ctx context.Context, plugin *Plugin, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.timeoutMs)*time.Millisecond)
	defer cancel()

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, plugin.Executable)
	cmd.Dir = plugin.Path
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("plugin execution timeout after %dms", e.timeoutMs)
	}
	if err != nil {
		if stderrStr := stderr.String(); stderrStr != "" {
			return nil, fmt.Errorf("plugin execution failed: %w, stderr: %s", err, stderrStr)
		}
		return nil, fmt.Errorf("plugin execution failed: %w", err)
	}

	var response Response
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return nil, fmt.Errorf("failed to parse plugin response: %w, stdout: %s", err, stdout.String())
	}

	return &response, nil
}
