package engine

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildArgsCarriesDecodePolicy(t *testing.T) {
	svc := NewService(Config{Python: "python3", ModelCacheDir: "/tmp/models"})
	args := svc.buildArgs("/tmp/helper.py", "/audio/input.wav", "small")

	joined := strings.Join(args, " ")
	for _, fragment := range []string{
		"--input /audio/input.wav",
		"--model small",
		"--device cpu",
		"--compute-type int8",
		"--beam-size 5",
		"--temperature 0.0",
		"--model-dir /tmp/models",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
	if args[0] != "/tmp/helper.py" {
		t.Fatalf("expected helper script first, got %q", args[0])
	}
}

func TestTranscribeStreamsSegments(t *testing.T) {
	dir := t.TempDir()
	writeStubBinary(t, dir, "python3", `#!/bin/sh
cat <<'PAYLOAD'
{"type":"info","language":"en","language_probability":0.97,"duration":3.5}
{"type":"segment","text":" Hi there","start":0.0,"end":1.5,"words":[{"word":" Hi","start":0.0,"end":0.5,"probability":0.9},{"word":" there","start":0.6,"end":1.4,"probability":1.4}]}
{"type":"segment","text":" Bye","start":2.0,"end":3.1,"words":[{"word":" Bye","start":2.0,"end":3.0,"probability":"0.8"}]}
PAYLOAD
`)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	modelCache := t.TempDir()
	svc := NewService(Config{Python: "python3", ModelCacheDir: modelCache})

	stream, err := svc.Transcribe(context.Background(), "/audio/input.wav", "base")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	defer stream.Close()

	info := stream.Info()
	if info.Language != "en" {
		t.Fatalf("unexpected language: %q", info.Language)
	}
	if info.Duration != 3.5 {
		t.Fatalf("unexpected duration: %v", info.Duration)
	}

	first, err := stream.Next()
	if err != nil {
		t.Fatalf("first Next returned error: %v", err)
	}
	if first.Text != " Hi there" {
		t.Fatalf("unexpected first segment text: %q", first.Text)
	}
	if len(first.Words) != 2 {
		t.Fatalf("unexpected word count: %d", len(first.Words))
	}
	if prob, ok := first.Words[1].Probability.(float64); !ok || prob != 1.4 {
		t.Fatalf("expected raw probability passthrough, got %v", first.Words[1].Probability)
	}

	second, err := stream.Next()
	if err != nil {
		t.Fatalf("second Next returned error: %v", err)
	}
	if prob, ok := second.Words[0].Probability.(string); !ok || prob != "0.8" {
		t.Fatalf("expected string probability passthrough, got %v", second.Words[0].Probability)
	}

	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF on repeated Next, got %v", err)
	}
}

func TestTranscribeEmptyStream(t *testing.T) {
	dir := t.TempDir()
	writeStubBinary(t, dir, "python3", `#!/bin/sh
printf '%s\n' '{"type":"info","language":"","language_probability":null,"duration":0.0}'
`)
	t.Setenv("PATH", dir)

	svc := NewService(Config{Python: "python3", ModelCacheDir: t.TempDir()})
	stream, err := svc.Transcribe(context.Background(), "/audio/silence.wav", "base")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	defer stream.Close()

	if stream.Info().Language != "" {
		t.Fatalf("expected empty language, got %q", stream.Info().Language)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF for empty stream, got %v", err)
	}
}

func TestTranscribeSurfacesErrorRecord(t *testing.T) {
	dir := t.TempDir()
	writeStubBinary(t, dir, "python3", `#!/bin/sh
printf '%s\n' '{"type":"error","message":"model load failed"}'
exit 1
`)
	t.Setenv("PATH", dir)

	svc := NewService(Config{Python: "python3", ModelCacheDir: t.TempDir()})
	_, err := svc.Transcribe(context.Background(), "/audio/input.wav", "base")
	if err == nil {
		t.Fatal("expected error from failing helper")
	}
	if !strings.Contains(err.Error(), "model load failed") {
		t.Fatalf("expected helper message, got %v", err)
	}
}

func TestTranscribeSurfacesHelperExit(t *testing.T) {
	dir := t.TempDir()
	writeStubBinary(t, dir, "python3", `#!/bin/sh
echo "something broke" >&2
exit 3
`)
	t.Setenv("PATH", dir)

	svc := NewService(Config{Python: "python3", ModelCacheDir: t.TempDir()})
	_, err := svc.Transcribe(context.Background(), "/audio/input.wav", "base")
	if err == nil {
		t.Fatal("expected error from failing helper")
	}
	if !strings.Contains(err.Error(), "engine helper") {
		t.Fatalf("expected helper error prefix, got %v", err)
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Fatalf("expected stderr detail, got %v", err)
	}
}

func TestTranscribeRejectsMissingArguments(t *testing.T) {
	svc := NewService(Config{Python: "python3"})
	if _, err := svc.Transcribe(context.Background(), "", "base"); err == nil {
		t.Fatal("expected error for missing input")
	}
	if _, err := svc.Transcribe(context.Background(), "/audio/input.wav", ""); err == nil {
		t.Fatal("expected error for missing model size")
	}
}

func TestTranscribeCleansUpHelperScript(t *testing.T) {
	dir := t.TempDir()
	writeStubBinary(t, dir, "python3", `#!/bin/sh
printf '%s\n' '{"type":"info","language":"en","language_probability":1.0,"duration":1.0}'
`)
	t.Setenv("PATH", dir)
	t.Setenv("TMPDIR", dir)

	svc := NewService(Config{Python: "python3", ModelCacheDir: t.TempDir()})
	stream, err := svc.Transcribe(context.Background(), "/audio/input.wav", "base")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	stream.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "transcribe-helper-") {
			t.Fatalf("expected helper script %s to be removed", filepath.Join(dir, entry.Name()))
		}
	}
}
