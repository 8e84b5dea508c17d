package services_test

import (
	"errors"
	"strings"
	"testing"

	"autotranscription/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrDecode, "engine", "transcribe", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"engine", "transcribe", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "engine", "run", "", nil)
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected nil marker to default to decode error, got %v", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	if code := services.ExitCode(nil); code != 0 {
		t.Fatalf("expected 0 for nil error, got %d", code)
	}

	missing := services.Wrap(services.ErrNotFound, "transcriber", "validate", "input missing", nil)
	if code := services.ExitCode(missing); code != 2 {
		t.Fatalf("expected 2 for missing input, got %d", code)
	}

	decode := services.Wrap(services.ErrDecode, "engine", "transcribe", "model load failed", errors.New("io"))
	if code := services.ExitCode(decode); code != 1 {
		t.Fatalf("expected 1 for decode failure, got %d", code)
	}

	unavailable := services.Wrap(services.ErrUnavailable, "engine", "probe", "missing package", nil)
	if code := services.ExitCode(unavailable); code != 1 {
		t.Fatalf("expected 1 for unavailable engine, got %d", code)
	}
}
