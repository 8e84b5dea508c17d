package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"autotranscription/internal/config"
	"autotranscription/internal/logging"
	"autotranscription/internal/resultcache"
	"autotranscription/internal/services"
	"autotranscription/internal/transcriber"
)

type rootOptions struct {
	check      bool
	input      string
	output     string
	modelSize  string
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "transcribe",
		Short:         "Produce word-level timestamped transcriptions as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Probe engine availability and exit")
	cmd.Flags().StringVar(&opts.input, "input", "", "Source audio file")
	cmd.Flags().StringVar(&opts.output, "output", "", "Destination JSON file")
	cmd.Flags().StringVar(&opts.modelSize, "model-size", "", "Model size (default: WHISPER_MODEL_SIZE env, then config)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging; with --check, print the full status report")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "prepare directories", "", err)
	}

	if opts.check {
		return runCheck(cmd, cfg, opts.verbose)
	}

	if strings.TrimSpace(opts.input) == "" {
		return services.Wrap(services.ErrValidation, "cli", "parse", "--input is required", nil)
	}
	if strings.TrimSpace(opts.output) == "" {
		return services.Wrap(services.ErrValidation, "cli", "parse", "--output is required", nil)
	}

	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "logging", "", err)
	}

	svc := transcriber.NewService(cfg, logger)
	if cfg.Cache.Enabled {
		store, cacheErr := resultcache.Open(cfg)
		if cacheErr != nil {
			logger.Warn("result cache unavailable", logging.Error(cacheErr))
		} else {
			defer store.Close()
			svc.WithCache(store)
		}
	}

	_, err = svc.Run(cmd.Context(), transcriber.Request{
		InputPath:  opts.input,
		OutputPath: opts.output,
		ModelSize:  opts.modelSize,
	})
	return err
}

func newLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	if verbose {
		adjusted := *cfg
		adjusted.Logging.Level = "debug"
		return logging.NewFromConfig(&adjusted)
	}
	return logging.NewFromConfig(cfg)
}
