package main

import (
	"strings"
	"testing"
)

func TestGetCommand(t *testing.T) {
	useTestRegistry(t)

	out, err := captureOutput(t, func() error {
		return runGet([]string{`HKCU\Software\Vendor\App`, "Version"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "1.0.0" {
		t.Errorf("got %q, want 1.0.0", out)
	}
}

func TestGetCommand_Missing(t *testing.T) {
	useTestRegistry(t)

	_, err := captureOutput(t, func() error {
		return runGet([]string{`HKCU\Software\Vendor\App`, "Nope"})
	})
	if err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestSetCommand(t *testing.T) {
	useTestRegistry(t)

	setType = "dword"
	defer func() { setType = "sz" }()

	_, err := captureOutput(t, func() error {
		return runSet([]string{`HKCU\Software\Vendor\App`, "Retries", "5"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := captureOutput(t, func() error {
		return runGet([]string{`HKCU\Software\Vendor\App`, "Retries"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, out, []string{"5 (0x00000005)"})
}

func TestParseValueArg(t *testing.T) {
	tests := []struct {
		typeName string
		raw      string
		wantErr  bool
	}{
		{"sz", "hello", false},
		{"dword", "42", false},
		{"dword", "0x10", false},
		{"dword", "not-a-number", true},
		{"qword", "9000000000", false},
		{"multi_sz", "a;b;c", false},
		{"binary", "deadbeef", false},
		{"binary", "xyz", true},
		{"none", "anything", true},
		{"bogus", "x", true},
	}
	for _, tt := range tests {
		_, err := parseValueArg("N", tt.typeName, tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseValueArg(%s, %q) error = %v, wantErr %v",
				tt.typeName, tt.raw, err, tt.wantErr)
		}
	}
}
