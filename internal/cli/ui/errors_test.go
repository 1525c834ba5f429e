package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "with context",
			opts: ErrorOptions{
				Context: "type not found",
				Problem: "Cannot find type 'Pont'.",
			},
			contains: []string{"❌", "TYPE NOT FOUND: Cannot find type 'Pont'."},
		},
		{
			name: "warning with details",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Ignoring keys",
				Details: []string{"colour", "size"},
			},
			contains: []string{"⚠️ Ignoring keys", "   - colour", "   - size"},
		},
		{
			name: "suggestions and help",
			opts: ErrorOptions{
				Problem:      "Unknown",
				Suggestions:  []string{"samples.Point", "samples.Money"},
				HelpCommands: []string{"See all types: beans introspect types"},
			},
			contains: []string{"Did you mean: samples.Point, samples.Money?", "→ See all types"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			result := FormatError(tt.opts)
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, result)
				}
			}
		})
	}
}

func TestTypeNotFoundError(t *testing.T) {
	result := TypeNotFoundError("Pont", []string{"samples.Point"}, true)

	for _, want := range []string{"TYPE NOT FOUND", "'Pont'", "samples.Point", "beans introspect types"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, result)
		}
	}
}

func TestInvalidBeanError(t *testing.T) {
	result := InvalidBeanError("samples.Money", []string{"amount: must be at least 0"}, true)

	if !strings.Contains(result, "INVALID SAMPLES.MONEY: 1 problem(s) found.") {
		t.Errorf("unexpected header:\n%s", result)
	}
	if !strings.Contains(result, "   - amount: must be at least 0") {
		t.Errorf("missing violation:\n%s", result)
	}
	if !strings.Contains(result, "beans introspect type samples.Money") {
		t.Errorf("missing help command:\n%s", result)
	}
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "bound samples.Point", true)

	if buf.String() != "✓ bound samples.Point\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
