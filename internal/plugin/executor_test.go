package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// scriptPlugin writes a shell script into a temp dir and wraps it as a
// discovered plugin handling the given action kinds.
func scriptPlugin(t *testing.T, name, script string, actions ...string) *Plugin {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping shell plugin test on Windows")
	}

	dir := t.TempDir()
	scriptPath := filepath.Join(dir, name+".sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest: Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name + ".sh",
			Actions:    actions,
		},
		Path:       dir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	p := scriptPlugin(t, "volume", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"volume set"}}
EOF
`, "set_volume")

	executor := NewExecutor(5000)
	response, err := executor.Execute(context.Background(), p, &Request{
		Action: "set_volume",
		Amount: 0.8,
	})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true, got false")
	}
	if response.Error != "" {
		t.Errorf("expected empty error, got %q", response.Error)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "volume set" {
		t.Errorf("expected message 'volume set', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	p := scriptPlugin(t, "echo", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`, "seek_by")

	executor := NewExecutor(5000)
	response, err := executor.Execute(context.Background(), p, &Request{
		Action: "seek_by",
		Amount: 10000,
	})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}

	received, ok := data["received"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected 'received' to be an object, got %T", data["received"])
	}
	if received["action"] != "seek_by" {
		t.Errorf("expected action 'seek_by', got %v", received["action"])
	}
	if received["amount"] != float64(10000) {
		t.Errorf("expected amount 10000, got %v", received["amount"])
	}
}

func TestExecutor_Timeout(t *testing.T) {
	p := scriptPlugin(t, "slow", `#!/bin/sh
sleep 10
echo '{"success":true}'
`, "screenshot")

	executor := NewExecutor(100)
	_, err := executor.Execute(context.Background(), p, &Request{Action: "screenshot"})
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "killed") {
		t.Errorf("expected timeout-related error, got: %v", err)
	}
}

func TestExecutor_CancelledContext(t *testing.T) {
	p := scriptPlugin(t, "slow-cancel", `#!/bin/sh
sleep 10
echo '{"success":true}'
`, "screenshot")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewExecutor(5000)
	if _, err := executor.Execute(ctx, p, &Request{Action: "screenshot"}); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestExecutor_Execute_ErrorResponse(t *testing.T) {
	p := scriptPlugin(t, "failing", `#!/bin/sh
echo '{"success":false,"error":"something went wrong"}'
`, "toggle_mute")

	executor := NewExecutor(5000)
	response, err := executor.Execute(context.Background(), p, &Request{Action: "toggle_mute"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if response.Success {
		t.Error("expected success=false, got true")
	}
	if response.Error != "something went wrong" {
		t.Errorf("expected error 'something went wrong', got %q", response.Error)
	}
}

func TestExecutor_Execute_InvalidJSON(t *testing.T) {
	p := scriptPlugin(t, "garbled", `#!/bin/sh
echo 'not valid json'
`, "toggle_mute")

	executor := NewExecutor(5000)
	if _, err := executor.Execute(context.Background(), p, &Request{Action: "toggle_mute"}); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	p := scriptPlugin(t, "crashing", `#!/bin/sh
echo "Error: something failed" >&2
exit 1
`, "toggle_mute")

	executor := NewExecutor(5000)
	_, err := executor.Execute(context.Background(), p, &Request{Action: "toggle_mute"})
	if err == nil {
		t.Fatal("expected error for non-zero exit, got nil")
	}
	if !strings.Contains(err.Error(), "something failed") {
		t.Errorf("expected stderr in error, got: %v", err)
	}
}
