package ofile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/ofile/pkg/ofile"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := ofile.NewLogger(&buf, zerolog.InfoLevel)

	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected log output to contain 'test message', got: %s", output)
	}
	if !strings.HasSuffix(strings.TrimSpace(output), "lib=ofile") {
		t.Errorf("Expected log output to end with 'lib=ofile', got: %s", output)
	}
}

func TestLogLevelFromString(t *testing.T) {
	testCases := []struct {
		levelStr string
		expected zerolog.Level
		wantErr  bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"invalid", zerolog.NoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.levelStr, func(t *testing.T) {
			level, err := ofile.LogLevelFromString(tc.levelStr)

			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for invalid level %q", tc.levelStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if level != tc.expected {
				t.Errorf("Expected level %v, got %v", tc.expected, level)
			}
		})
	}
}

func TestNewTestLogger(t *testing.T) {
	testCases := []struct {
		verbose  int
		expected zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		logger := ofile.NewTestLogger(&buf, tc.verbose)
		if logger.GetLevel() != tc.expected {
			t.Errorf("verbose %d: expected level %v, got %v", tc.verbose, tc.expected, logger.GetLevel())
		}
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := *ofile.Logger()
	t.Cleanup(func() { ofile.SetLogger(original) })

	ofile.SetLogger(ofile.NewLogger(&buf, zerolog.DebugLevel))
	ofile.Logger().Debug().Str("path", "x").Msg("routed")

	if !strings.Contains(buf.String(), "routed") {
		t.Errorf("expected package logger output, got %q", buf.String())
	}
}
