package transcript

// Word is the smallest timestamped unit of a transcription. Start and End are
// seconds from the beginning of the input; End is always strictly greater
// than Start.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Result is the finished transcription document. Language is nil when the
// engine reported no detection; Duration is the maximum segment end time
// observed, zero when the input produced no segments.
type Result struct {
	Text     string  `json:"text"`
	Language *string `json:"language"`
	Duration float64 `json:"duration"`
	Words    []Word  `json:"words"`
}

// WordCount returns the number of emitted words.
func (r *Result) WordCount() int {
	if r == nil {
		return 0
	}
	return len(r.Words)
}

// LanguageCode returns the detected language code or "" when undetected.
func (r *Result) LanguageCode() string {
	if r == nil || r.Language == nil {
		return ""
	}
	return *r.Language
}
