package language

import "strings"

type entry struct {
	code3   string // ISO 639-2 primary (3-letter)
	display string // Human-readable name
}

// Keyed by ISO 639-1 code, the form whisper models report. The table covers
// the languages the engine detects with usable accuracy; anything else falls
// through to the raw code.
var languages = map[string]entry{
	"en": {"eng", "English"},
	"es": {"spa", "Spanish"},
	"fr": {"fra", "French"},
	"de": {"deu", "German"},
	"it": {"ita", "Italian"},
	"pt": {"por", "Portuguese"},
	"ja": {"jpn", "Japanese"},
	"ko": {"kor", "Korean"},
	"zh": {"zho", "Chinese"},
	"ru": {"rus", "Russian"},
	"ar": {"ara", "Arabic"},
	"hi": {"hin", "Hindi"},
	"nl": {"nld", "Dutch"},
	"pl": {"pol", "Polish"},
	"sv": {"swe", "Swedish"},
	"da": {"dan", "Danish"},
	"no": {"nor", "Norwegian"},
	"fi": {"fin", "Finnish"},
	"tr": {"tur", "Turkish"},
	"el": {"ell", "Greek"},
	"he": {"heb", "Hebrew"},
	"cs": {"ces", "Czech"},
	"hu": {"hun", "Hungarian"},
	"ro": {"ron", "Romanian"},
	"uk": {"ukr", "Ukrainian"},
	"vi": {"vie", "Vietnamese"},
	"th": {"tha", "Thai"},
	"id": {"ind", "Indonesian"},
	"ms": {"msa", "Malay"},
	"ca": {"cat", "Catalan"},
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Known reports whether code is a language the table covers.
func Known(code string) bool {
	_, ok := languages[normalize(code)]
	return ok
}

// DisplayName returns the human-readable name for a whisper language code.
// Unknown but non-empty codes are returned as-is; an empty code reads as
// "Unknown".
func DisplayName(code string) string {
	code = normalize(code)
	if code == "" {
		return "Unknown"
	}
	if entry, ok := languages[code]; ok {
		return entry.display
	}
	return code
}

// ToISO3 converts a whisper language code to its ISO 639-2 form, or returns
// the input unchanged when the table has no mapping.
func ToISO3(code string) string {
	code = normalize(code)
	if entry, ok := languages[code]; ok {
		return entry.code3
	}
	return code
}
