package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/memreg"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/reg"
)

// useTestRegistry points the CLI at a seeded in-memory registry for the
// duration of one test.
func useTestRegistry(t *testing.T) *memreg.Registry {
	t.Helper()

	m := memreg.New()
	m.Seed(types.CurrentUser, `Software\Vendor\App`)
	m.Seed(types.CurrentUser, `Software\Vendor\Tool`)

	enc := func(v types.Value) []byte {
		data, err := codec.Encode(v)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		return data
	}
	m.SeedValue(types.CurrentUser, `Software\Vendor\App`, "Version",
		types.REG_SZ, enc(types.String("Version", "1.0.0")))
	m.SeedValue(types.CurrentUser, `Software\Vendor\App`, "Enabled",
		types.REG_DWORD, enc(types.DWord("Enabled", 1)))

	orig := newRegistry
	newRegistry = func() (*reg.Registry, error) { return reg.New(m), nil }
	t.Cleanup(func() { newRegistry = orig })

	return m
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
