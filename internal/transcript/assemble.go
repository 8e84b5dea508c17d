package transcript

import (
	"io"
	"strings"

	"autotranscription/internal/engine"
)

// minWordSpan is the fallback bump applied when a word would otherwise have a
// zero or negative duration.
const minWordSpan = 0.01

// Source supplies decoded segments in order, exactly once. Next returns
// io.EOF after the final segment; Info is valid as soon as the source is
// constructed.
type Source interface {
	Info() engine.Info
	Next() (*engine.Segment, error)
}

// Assemble consumes a segment source and produces the normalized result.
// It makes a single forward pass: segment text joins, the running duration
// maximum, and per-word sanitization all happen as each record arrives.
func Assemble(src Source) (*Result, error) {
	var (
		textParts []string
		duration  float64
	)
	words := make([]Word, 0, 64)

	for {
		seg, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		segText := strings.TrimSpace(seg.Text)
		if segText != "" {
			textParts = append(textParts, segText)
		}

		segStart := SafeFloat(seg.Start, 0)
		segEnd := SafeFloat(seg.End, segStart+minWordSpan)
		if segEnd > duration {
			duration = segEnd
		}

		for _, raw := range seg.Words {
			token := strings.TrimSpace(raw.Word)
			if token == "" {
				// Engine occasionally emits whitespace-only tokens around
				// VAD boundaries; they carry no content and are dropped.
				continue
			}

			start := SafeFloat(raw.Start, segStart)
			end := SafeFloat(raw.End, max(start+minWordSpan, segEnd))
			if end <= start {
				end = start + minWordSpan
			}

			words = append(words, Word{
				Text:       token,
				Start:      start,
				End:        end,
				Confidence: clamp(SafeFloat(raw.Probability, 0), 0, 1),
			})
		}
	}

	text := strings.TrimSpace(strings.Join(textParts, " "))
	if text == "" && len(words) > 0 {
		tokens := make([]string, 0, len(words))
		for _, w := range words {
			tokens = append(tokens, w.Text)
		}
		text = strings.TrimSpace(strings.Join(tokens, " "))
	}

	result := &Result{
		Text:     text,
		Duration: duration,
		Words:    words,
	}
	if lang := strings.TrimSpace(src.Info().Language); lang != "" {
		result.Language = &lang
	}
	return result, nil
}
