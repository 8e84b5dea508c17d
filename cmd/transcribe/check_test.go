package main

import (
	"errors"
	"testing"

	"autotranscription/internal/services"
)

func TestCheckAvailable(t *testing.T) {
	setupHome(t)
	installStubPython(t, "#!/bin/sh\necho \"linux x86_64 3.12\"\n")

	_, stderr, err := runCLI(t, "--check")
	if err != nil {
		t.Fatalf("check returned error: %v (stderr %q)", err, stderr)
	}
	requireContains(t, stderr, "faster-whisper ready")
	requireContains(t, stderr, "python 3.12")
}

func TestCheckVerboseRendersReport(t *testing.T) {
	setupHome(t)
	installStubPython(t, "#!/bin/sh\necho \"linux x86_64 3.12\"\n")

	_, stderr, err := runCLI(t, "--check", "--verbose")
	if err != nil {
		t.Fatalf("check returned error: %v", err)
	}
	requireContains(t, stderr, "Dependencies")
	requireContains(t, stderr, "Directories")
	requireContains(t, stderr, "Python")
	requireContains(t, stderr, "importable")
}

func TestCheckMissingInterpreter(t *testing.T) {
	setupHome(t)
	t.Setenv("PATH", t.TempDir())

	_, _, err := runCLI(t, "--check")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if code := services.ExitCode(err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	requireContains(t, err.Error(), "not found in PATH")
}

func TestCheckUnsupportedPlatform(t *testing.T) {
	setupHome(t)
	installStubPython(t, "#!/bin/sh\necho \"darwin x86_64 3.14\"\n")

	_, _, err := runCLI(t, "--check")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if code := services.ExitCode(err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	requireContains(t, err.Error(), "onnxruntime wheels are not published")
	requireContains(t, err.Error(), "Python 3.13 (or lower)")
}

func TestCheckMissingPackage(t *testing.T) {
	setupHome(t)
	installStubPython(t, `#!/bin/sh
case "$*" in
*faster_whisper*)
  echo "ModuleNotFoundError: No module named 'faster_whisper'" >&2
  exit 1
  ;;
*)
  echo "linux x86_64 3.12"
  ;;
esac
`)

	_, _, err := runCLI(t, "--check")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	requireContains(t, err.Error(), "faster-whisper is not installed")
}
