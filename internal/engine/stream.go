package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gofrs/flock"
)

// Word carries one recognized token as emitted by the engine. Timing and
// probability values stay untyped until sanitization because the engine may
// omit them or emit junk for silence-adjacent tokens.
type Word struct {
	Word        string `json:"word"`
	Start       any    `json:"start"`
	End         any    `json:"end"`
	Probability any    `json:"probability"`
}

// Segment represents one transcribed segment from the engine stream.
type Segment struct {
	Text  string `json:"text"`
	Start any    `json:"start"`
	End   any    `json:"end"`
	Words []Word `json:"words"`
}

// Info carries the run metadata the engine reports before segments arrive.
// Duration here is the engine's estimate of the input length, not the
// transcribed span.
type Info struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
}

// Stream is a forward-only iterator over the segments of one decode. Segments
// arrive in order and are consumed exactly once; Next returns io.EOF after the
// final segment once the helper has exited cleanly.
type Stream struct {
	info    Info
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	stderr  *strings.Builder
	lock    *flock.Flock
	helper  string

	pending  *Segment
	done     bool
	finalErr error
}

// Info returns the run metadata captured from the engine's opening record.
func (s *Stream) Info() Info {
	return s.info
}

// prime consumes records until the opening info record (or the first segment,
// for engines that skip metadata) so Info is populated before iteration.
func (s *Stream) prime() error {
	seg, err := s.Next()
	if err != nil {
		if err == io.EOF {
			// Empty input: zero segments is still a valid decode.
			return nil
		}
		return err
	}
	s.pending = seg
	return nil
}

// Next returns the next segment in decode order. It returns io.EOF once the
// stream is exhausted and the helper exited cleanly, or a descriptive error
// when the helper failed mid-decode.
func (s *Stream) Next() (*Segment, error) {
	if s.pending != nil {
		seg := s.pending
		s.pending = nil
		return seg, nil
	}
	if s.done {
		return nil, s.finalErr
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		var env struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			return nil, s.fail(fmt.Errorf("parse transcription stream: %w", err))
		}

		switch env.Type {
		case "segment":
			var seg Segment
			if err := json.Unmarshal([]byte(line), &seg); err != nil {
				return nil, s.fail(fmt.Errorf("parse segment record: %w", err))
			}
			return &seg, nil
		case "info":
			if err := json.Unmarshal([]byte(line), &s.info); err != nil {
				return nil, s.fail(fmt.Errorf("parse info record: %w", err))
			}
		case "error":
			var failure struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal([]byte(line), &failure); err != nil {
				return nil, s.fail(fmt.Errorf("parse error record: %w", err))
			}
			return nil, s.fail(fmt.Errorf("%s", failure.Message))
		default:
			// Unknown record types are skipped so newer helpers stay usable.
		}
	}

	if err := s.scanner.Err(); err != nil {
		return nil, s.fail(fmt.Errorf("read transcription stream: %w", err))
	}

	return nil, s.finish()
}

// finish waits for the helper after its stdout closed and records the
// terminal state: io.EOF on clean exit, a decode error otherwise.
func (s *Stream) finish() error {
	if s.done {
		return s.finalErr
	}
	err := s.cmd.Wait()
	s.done = true
	s.release()
	if err != nil {
		s.finalErr = fmt.Errorf("engine helper: %w%s", err, stderrDetail(s.stderr))
	} else {
		s.finalErr = io.EOF
	}
	return s.finalErr
}

// fail kills the helper, records err as the stream's terminal state, and
// returns it.
func (s *Stream) fail(err error) error {
	if s.done {
		return s.finalErr
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	s.done = true
	s.release()
	s.finalErr = err
	return s.finalErr
}

// Close terminates the helper if it is still running and releases the model
// cache lock and helper script. It is safe to call multiple times.
func (s *Stream) Close() error {
	if !s.done {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		_ = s.cmd.Wait()
		s.done = true
		s.finalErr = io.EOF
		s.release()
	}
	return nil
}

func (s *Stream) release() {
	if s.lock != nil {
		_ = s.lock.Unlock()
		s.lock = nil
	}
	if s.helper != "" {
		_ = os.Remove(s.helper)
		s.helper = ""
	}
}

// stderrDetail trims the captured helper stderr to a short suffix suitable
// for error messages.
func stderrDetail(stderr *strings.Builder) string {
	if stderr == nil {
		return ""
	}
	detail := strings.TrimSpace(stderr.String())
	if detail == "" {
		return ""
	}
	const limit = 2048
	if len(detail) > limit {
		detail = detail[len(detail)-limit:]
	}
	return ": " + detail
}
