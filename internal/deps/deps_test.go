package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinariesReportsAvailability(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "python3")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries([]Requirement{
		{Name: "Python", Command: "python3", Description: "Hosts the engine helper"},
		{Name: "Missing", Command: "definitely-not-installed"},
		{Name: "Unconfigured", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	if !statuses[0].Available {
		t.Fatalf("expected python stub available, got %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected missing binary detail, got %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %+v", statuses[2])
	}
}

func TestTranscriberRequirements(t *testing.T) {
	reqs := Transcriber("python3.13")
	if len(reqs) != 1 {
		t.Fatalf("expected one requirement, got %d", len(reqs))
	}
	if reqs[0].Command != "python3.13" || reqs[0].Optional {
		t.Fatalf("unexpected requirement: %+v", reqs[0])
	}
}
