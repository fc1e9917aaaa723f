package petalfx

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugLogTimings(t *testing.T) {
	d, clock, f := newTestDriver(DriverConfig{Debug: true})
	f.count, f.max = 4, 25
	d.Tick()
	clock.Advance(16 * time.Millisecond)
	d.Tick()

	output := captureStderr(t, d.debugLog)
	if !strings.Contains(output, "[petalfx] update:") || !strings.Contains(output, "frames: 1") {
		t.Errorf("missing timing line: %q", output)
	}
	if !strings.Contains(output, "petals: 4/25") {
		t.Errorf("missing population line: %q", output)
	}
	if strings.Contains(output, "warning") {
		t.Errorf("unexpected warning: %q", output)
	}
}

func TestDebugLogPopulationWarning(t *testing.T) {
	d, _, f := newTestDriver(DriverConfig{Debug: true})
	f.count, f.max = 30, 25

	output := captureStderr(t, d.debugLog)
	if !strings.Contains(output, "warning: population 30 exceeds pool 25") {
		t.Errorf("expected population warning, got: %q", output)
	}
}

func TestDebugLogWithoutPetals(t *testing.T) {
	d, _, _ := newTestDriver(DriverConfig{Debug: true})
	output := captureStderr(t, d.debugLog)
	if strings.Contains(output, "petals:") {
		t.Errorf("population line without a petal effect: %q", output)
	}
}
