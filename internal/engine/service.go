package engine

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

//go:embed assets/transcribe_helper.py
var helperScript []byte

const lockRetryDelay = 500 * time.Millisecond

// Service provides faster-whisper transcription capabilities.
type Service struct {
	cfg         Config
	probeRunner func(ctx context.Context, name string, args ...string) (string, error)
}

// NewService creates an engine service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Python == "" {
		cfg.Python = DefaultPythonCommand
	}
	return &Service{cfg: cfg, probeRunner: defaultProbeRunner}
}

// WithProbeRunner sets a custom probe command runner (for testing).
func (s *Service) WithProbeRunner(runner func(ctx context.Context, name string, args ...string) (string, error)) {
	s.probeRunner = runner
}

func (s *Service) runProbe(ctx context.Context, name string, args ...string) (string, error) {
	if s.probeRunner != nil {
		return s.probeRunner(ctx, name, args...)
	}
	return defaultProbeRunner(ctx, name, args...)
}

// Python returns the configured interpreter for logging and diagnostics.
func (s *Service) Python() string {
	return s.cfg.Python
}

// Transcribe starts a decode of inputPath with the given model and returns a
// stream over its segments. The first record is consumed eagerly so the
// returned stream already carries the run metadata; callers must drain the
// stream to io.EOF or Close it.
func (s *Service) Transcribe(ctx context.Context, inputPath, modelSize string) (*Stream, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("transcribe: input path required")
	}
	if modelSize == "" {
		return nil, fmt.Errorf("transcribe: model size required")
	}

	helperPath, err := writeHelperScript()
	if err != nil {
		return nil, err
	}

	lock, err := s.lockModelCache(ctx)
	if err != nil {
		os.Remove(helperPath)
		return nil, err
	}

	cleanup := func() {
		if lock != nil {
			_ = lock.Unlock()
		}
		os.Remove(helperPath)
	}

	args := s.buildArgs(helperPath, inputPath, modelSize)
	cmd := exec.CommandContext(ctx, s.cfg.Python, args...) //nolint:gosec

	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("engine helper stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cleanup()
		return nil, fmt.Errorf("start engine helper: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	stream := &Stream{
		cmd:     cmd,
		scanner: scanner,
		stderr:  &stderr,
		lock:    lock,
		helper:  helperPath,
	}

	if err := stream.prime(); err != nil {
		return nil, err
	}
	return stream, nil
}

// buildArgs constructs the helper invocation for one decode.
func (s *Service) buildArgs(helperPath, inputPath, modelSize string) []string {
	args := make([]string, 0, 16)
	args = append(args,
		helperPath,
		"--input", inputPath,
		"--model", modelSize,
		"--device", CPUDevice,
		"--compute-type", CPUComputeType,
		"--beam-size", BeamSize,
		"--temperature", Temperature,
	)
	if s.cfg.ModelCacheDir != "" {
		args = append(args, "--model-dir", s.cfg.ModelCacheDir)
	}
	return args
}

// lockModelCache guards the model cache directory for the duration of a
// decode so concurrent runs cannot race a model download.
func (s *Service) lockModelCache(ctx context.Context) (*flock.Flock, error) {
	if s.cfg.ModelCacheDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(s.cfg.ModelCacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure model cache dir: %w", err)
	}
	lock := flock.New(filepath.Join(s.cfg.ModelCacheDir, ".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock model cache: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock model cache: not acquired")
	}
	return lock, nil
}

func writeHelperScript() (string, error) {
	file, err := os.CreateTemp("", "transcribe-helper-*.py")
	if err != nil {
		return "", fmt.Errorf("create helper script: %w", err)
	}
	if _, err := file.Write(helperScript); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("write helper script: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close helper script: %w", err)
	}
	return file.Name(), nil
}
