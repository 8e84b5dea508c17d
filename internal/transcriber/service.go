package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"autotranscription/internal/config"
	"autotranscription/internal/engine"
	"autotranscription/internal/language"
	"autotranscription/internal/logging"
	"autotranscription/internal/resultcache"
	"autotranscription/internal/services"
	"autotranscription/internal/transcript"
)

// decodeFunc starts one decode and returns its segment stream. The default
// implementation launches the engine helper; tests substitute synthetic
// sources.
type decodeFunc func(ctx context.Context, inputPath, modelSize string) (transcript.Source, error)

// Request describes one transcription invocation.
type Request struct {
	InputPath  string
	OutputPath string
	// ModelSize is the CLI flag value; empty falls through to the
	// WHISPER_MODEL_SIZE environment variable and then the config default.
	ModelSize string
}

// Summary reports what a completed run did.
type Summary struct {
	RunID     string
	Title     string
	ModelSize string
	Language  string
	Duration  float64
	WordCount int
	CacheHit  bool
	Elapsed   time.Duration
}

// Service runs transcriptions end to end.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *resultcache.Store
	decode decodeFunc
}

// NewService builds a transcription service around the configured engine.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	eng := engine.NewService(engine.Config{
		Python:        cfg.Engine.Python,
		ModelCacheDir: cfg.Paths.ModelCacheDir,
	})
	return &Service{
		cfg:    cfg,
		logger: logger,
		decode: func(ctx context.Context, inputPath, modelSize string) (transcript.Source, error) {
			return eng.Transcribe(ctx, inputPath, modelSize)
		},
	}
}

// WithCache attaches a result cache. A nil store leaves caching off.
func (s *Service) WithCache(store *resultcache.Store) {
	s.cache = store
}

// WithDecoder sets a custom decode function (for testing).
func (s *Service) WithDecoder(decode decodeFunc) {
	s.decode = decode
}

// Run performs one transcription. The input must exist before the engine is
// consulted; a cache hit rewrites the output file without decoding.
func (s *Service) Run(ctx context.Context, req Request) (*Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithComponent(ctx, "transcriber")
	logger := logging.WithContext(ctx, s.logger)

	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return nil, services.Wrap(services.ErrValidation, "transcriber", "validate", "input path required", nil)
	}
	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		return nil, services.Wrap(services.ErrValidation, "transcriber", "validate", "output path required", nil)
	}

	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "transcriber", "validate",
				fmt.Sprintf("input file %s does not exist", input), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "transcriber", "validate", "stat input", err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "transcriber", "validate",
			fmt.Sprintf("input path %s is a directory", input), nil)
	}

	modelSize := s.cfg.ResolveModelSize(req.ModelSize)
	title := DisplayTitle(input)
	logger.Info("starting transcription",
		logging.String("title", title),
		logging.String("input", input),
		logging.String("model", modelSize))

	var cacheKey resultcache.Key
	if s.cache != nil {
		digest, digestErr := resultcache.DigestFile(input)
		if digestErr != nil {
			logger.Warn("input digest failed, skipping cache", logging.Error(digestErr))
		} else {
			cacheKey = resultcache.Key{
				InputDigest:    digest,
				ModelSize:      modelSize,
				PolicyRevision: engine.PolicyRevision,
			}
			cached, hit, cacheErr := s.cache.Get(ctx, cacheKey)
			if cacheErr != nil {
				logger.Warn("cache lookup failed", logging.Error(cacheErr))
			} else if hit {
				if err := transcript.WriteFile(output, cached); err != nil {
					return nil, services.Wrap(nil, "transcriber", "write output", "", err)
				}
				summary := s.summarize(runID, title, modelSize, cached, true, started)
				s.logCompletion(logger, summary, output)
				return summary, nil
			}
		}
	}

	src, err := s.decode(ctx, input, modelSize)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "engine", "transcribe", "", err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	result, err := transcript.Assemble(src)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "engine", "stream", "", err)
	}

	if err := transcript.WriteFile(output, result); err != nil {
		return nil, services.Wrap(nil, "transcriber", "write output", "", err)
	}

	if s.cache != nil && cacheKey.InputDigest != "" {
		if err := s.cache.Put(ctx, cacheKey, title, result); err != nil {
			logger.Warn("cache store failed", logging.Error(err))
		}
	}

	summary := s.summarize(runID, title, modelSize, result, false, started)
	s.logCompletion(logger, summary, output)
	return summary, nil
}

func (s *Service) summarize(runID, title, modelSize string, result *transcript.Result, cacheHit bool, started time.Time) *Summary {
	return &Summary{
		RunID:     runID,
		Title:     title,
		ModelSize: modelSize,
		Language:  result.LanguageCode(),
		Duration:  result.Duration,
		WordCount: result.WordCount(),
		CacheHit:  cacheHit,
		Elapsed:   time.Since(started),
	}
}

func (s *Service) logCompletion(logger *slog.Logger, summary *Summary, output string) {
	logger.Info("transcription complete",
		logging.String("language", language.DisplayName(summary.Language)),
		logging.Float64("duration_seconds", summary.Duration),
		logging.Int("words", summary.WordCount),
		logging.Bool("cache_hit", summary.CacheHit),
		logging.Duration("elapsed", summary.Elapsed),
		logging.String("output", output))
}
