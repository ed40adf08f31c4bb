package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureOutputWithExitCode(t *testing.T, run func() int) (int, string, string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stdout failed: %v", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stderr failed: %v", err)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	code := run()

	_ = stdoutW.Close()
	_ = stderrW.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdoutBytes, _ := io.ReadAll(stdoutR)
	stderrBytes, _ := io.ReadAll(stderrR)

	_ = stdoutR.Close()
	_ = stderrR.Close()

	return code, string(stdoutBytes), string(stderrBytes)
}

func TestRunCLI_NoArgs(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI(nil)
	})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("stderr should print usage, got: %s", stderr)
	}
}

func TestRunCLI_UnknownCommand(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"frobnicate"})
	})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Unknown command: frobnicate") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestRunCLI_Version(t *testing.T) {
	code, stdout, _ := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"version"})
	})
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "wabridge") {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestRunCLI_ConfigLockAndCheck(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "wabridge.yaml")
	if err := os.WriteFile(configPath, []byte("listen: 127.0.0.1:8080\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "lock", "--config", configPath})
	})
	if code != 0 {
		t.Fatalf("config lock exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "manifest written") {
		t.Errorf("stdout = %s", stdout)
	}

	code, stdout, stderr = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "check", "--config", configPath})
	})
	if code != 0 {
		t.Fatalf("config check exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "matches manifest") {
		t.Errorf("stdout = %s", stdout)
	}

	// Tampered config fails the check.
	if err := os.WriteFile(configPath, []byte("listen: 0.0.0.0:1\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	code, _, _ = captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"config", "check", "--config", configPath})
	})
	if code != 1 {
		t.Errorf("config check on tampered file exit code = %d, want 1", code)
	}
}

func TestRunServe_BadConfig(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runCLI([]string{"serve", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Config error") {
		t.Errorf("stderr = %s", stderr)
	}
}
