package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"autotranscription/internal/config"
	"autotranscription/internal/deps"
	"autotranscription/internal/engine"
	"autotranscription/internal/preflight"
	"autotranscription/internal/services"
)

// runCheck probes engine availability. Everything it prints goes to the
// error stream; stdout stays reserved for transcription output.
func runCheck(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	eng := engine.NewService(engine.Config{
		Python:        cfg.Engine.Python,
		ModelCacheDir: cfg.Paths.ModelCacheDir,
	})
	avail := eng.Probe(cmd.Context())

	errOut := cmd.ErrOrStderr()
	colorize := shouldColorize(errOut)

	if verbose {
		renderCheckReport(errOut, cfg, avail, colorize)
	}

	if !avail.Available {
		return services.Wrap(services.ErrUnavailable, "engine", "check", avail.Reason, nil)
	}

	detail := fmt.Sprintf("faster-whisper ready (python %s, %s)", avail.Version, avail.Python)
	fmt.Fprintln(errOut, renderStatusLine("Engine", statusOK, detail, colorize))
	return nil
}

func renderCheckReport(w io.Writer, cfg *config.Config, avail engine.Availability, colorize bool) {
	for _, line := range renderSectionHeader("Dependencies", colorize) {
		fmt.Fprintln(w, line)
	}
	statuses := deps.CheckBinaries(deps.Transcriber(cfg.Engine.Python))
	depRows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			state = "missing"
		}
		depRows = append(depRows, []string{status.Name, status.Command, state, status.Detail})
	}
	fmt.Fprintln(w, renderTable([]string{"Dependency", "Command", "State", "Detail"}, depRows, nil))

	for _, line := range renderSectionHeader("Directories", colorize) {
		fmt.Fprintln(w, line)
	}
	results := preflight.RunAll(cfg)
	dirRows := make([][]string, 0, len(results))
	for _, result := range results {
		state := "ok"
		if !result.Passed {
			state = "failed"
		}
		dirRows = append(dirRows, []string{result.Name, state, result.Detail})
	}
	fmt.Fprintln(w, renderTable([]string{"Check", "State", "Detail"}, dirRows, nil))

	for _, line := range renderSectionHeader("Engine", colorize) {
		fmt.Fprintln(w, line)
	}
	if avail.Python != "" {
		fmt.Fprintln(w, renderStatusLine("Interpreter", statusInfo, avail.Python, colorize))
	}
	if avail.Version != "" {
		detail := avail.Version
		if avail.Platform != "" {
			detail = fmt.Sprintf("%s (%s %s)", avail.Version, avail.Platform, avail.Machine)
		}
		fmt.Fprintln(w, renderStatusLine("Python version", statusInfo, detail, colorize))
	}
	if avail.Available {
		fmt.Fprintln(w, renderStatusLine("faster-whisper", statusOK, "importable", colorize))
	} else {
		fmt.Fprintln(w, renderStatusLine("faster-whisper", statusError, avail.Reason, colorize))
	}
}
