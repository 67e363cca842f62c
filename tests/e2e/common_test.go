package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildSiloBinary builds the silo binary in the specified directory and returns its path.
// It handles the build command execution and error checking.
func buildSiloBinary(t *testing.T, dir string) string {
	t.Helper()
	siloBin := filepath.Join(dir, "silo.exe")
	// Assumes tests are running from tests/e2e or similar depth.
	buildCmd := exec.Command("go", "build", "-o", siloBin, "../../cmd/silo")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build silo: %v\n%s", err, string(out))
	}
	return siloBin
}

// runCmd executes the binary and fails the test on a non-zero exit.
func runCmd(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	fmt.Printf("[%s] Executing: %s %v\n", dir, name, args)
	if err := cmd.Run(); err != nil {
		t.Fatalf("Command %s %v failed in %s: %v\n%s", name, args, dir, err, out.String())
	}
	return out.String()
}

// runCmdExpectError executes the binary expecting a non-zero exit.
func runCmdExpectError(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Run(); err == nil {
		t.Fatalf("Command %s %v should have failed but did not", name, args)
	}
}
