package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Availability reports whether the recognition engine can run. It is resolved
// once per process before any decode; Reason carries the user-facing message
// when the engine is unusable.
type Availability struct {
	Available bool
	Reason    string
	Python    string
	Version   string
	Platform  string
	Machine   string
}

const (
	platformQuery = "import platform, sys; print('%s %s %d.%d' % (sys.platform, platform.machine(), sys.version_info[0], sys.version_info[1]))"
	importQuery   = "import faster_whisper"
)

const macOSIntelPythonMessage = "faster-whisper is unavailable on macOS Intel (x86_64) with Python 3.14+ " +
	"because onnxruntime wheels are not published for that combination. " +
	"Use Python 3.13 (or lower) on Intel Macs, then run `pip install -r requirements.txt`."

const notInstalledMessage = "faster-whisper is not installed. Run `pip install -r requirements.txt`."

// Probe resolves engine availability for the configured interpreter.
func (s *Service) Probe(ctx context.Context) Availability {
	python := s.cfg.Python
	if python == "" {
		python = DefaultPythonCommand
	}

	resolved, err := exec.LookPath(python)
	if err != nil {
		return Availability{Reason: fmt.Sprintf("python interpreter %q not found in PATH", python)}
	}

	out, err := s.runProbe(ctx, resolved, "-c", platformQuery)
	if err != nil {
		return Availability{
			Python: resolved,
			Reason: fmt.Sprintf("unable to query interpreter %s: %v", resolved, err),
		}
	}

	platformName, machine, major, minor, err := parsePlatformTriple(out)
	if err != nil {
		return Availability{
			Python: resolved,
			Reason: fmt.Sprintf("unexpected interpreter probe output from %s: %v", resolved, err),
		}
	}

	avail := Availability{
		Python:   resolved,
		Version:  fmt.Sprintf("%d.%d", major, minor),
		Platform: platformName,
		Machine:  machine,
	}

	if unsupportedMacOSIntelPython(platformName, machine, major, minor) {
		avail.Reason = macOSIntelPythonMessage
		return avail
	}

	if out, err := s.runProbe(ctx, resolved, "-c", importQuery); err != nil {
		reason := notInstalledMessage
		if detail := lastLine(out); detail != "" {
			reason += " Import error: " + detail
		}
		avail.Reason = reason
		return avail
	}

	avail.Available = true
	return avail
}

// unsupportedMacOSIntelPython reports the one interpreter/platform combination
// faster-whisper cannot serve: onnxruntime publishes no wheels for CPython
// 3.14+ on Intel macOS.
func unsupportedMacOSIntelPython(platformName, machine string, major, minor int) bool {
	if platformName != "darwin" || machine != "x86_64" {
		return false
	}
	return major > 3 || (major == 3 && minor >= 14)
}

func parsePlatformTriple(out string) (platformName, machine string, major, minor int, err error) {
	line := lastLine(out)
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", "", 0, 0, fmt.Errorf("want platform, machine, and version, got %q", line)
	}
	version := strings.SplitN(fields[2], ".", 2)
	if len(version) != 2 {
		return "", "", 0, 0, fmt.Errorf("malformed version %q", fields[2])
	}
	major, err = strconv.Atoi(version[0])
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("malformed version %q", fields[2])
	}
	minor, err = strconv.Atoi(version[1])
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("malformed version %q", fields[2])
	}
	return fields[0], fields[1], major, minor, nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func defaultProbeRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	return string(output), err
}
