package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var (
	errTestError      = errors.New("test error")
	errSomeOtherError = errors.New("some other error")
)

func TestExitWithError(t *testing.T) {
	var buf bytes.Buffer
	code := exitWithError(&buf, errTestError)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	want := "✗ test error\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandleParseError_GenericError(t *testing.T) {
	var buf bytes.Buffer
	code := handleParseError(errSomeOtherError, &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if output := buf.String(); !strings.Contains(output, "✗ some other error") {
		t.Errorf("expected error to be printed: %s", output)
	}
}

func TestHandleParseError_ConfigHint(t *testing.T) {
	var buf bytes.Buffer
	code := handleParseError(errors.New("--config: expected string value but got \"EOF\""), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	output := buf.String()
	if !strings.Contains(output, "`-c/--config` expects a value") {
		t.Errorf("missing hint: %s", output)
	}
	if strings.Contains(output, "✗") {
		t.Errorf("hint must replace the raw error: %s", output)
	}
}
