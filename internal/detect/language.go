package detect

import "strings"

// knownCodes is the set of language codes the service recognizes.
var knownCodes = map[string]bool{
	"en": true, "hi": true, "ta": true, "te": true, "kn": true,
	"ml": true, "bn": true, "mr": true, "gu": true, "pa": true,
	"ur": true, "sa": true, "fr": true, "de": true, "es": true,
	"it": true, "pt": true, "zh": true, "ja": true, "ko": true,
	"ar": true, "ru": true,
}

// codeAliases maps ISO-639-2 codes and common language names onto the
// two-letter primary subtags used everywhere in this service.
var codeAliases = map[string]string{
	"eng": "en", "english": "en",
	"hin": "hi", "hindi": "hi",
	"tam": "ta", "tamil": "ta",
	"tel": "te", "telugu": "te",
	"kan": "kn", "kannada": "kn",
	"mal": "ml", "malayalam": "ml",
	"ben": "bn", "bengali": "bn",
	"mar": "mr", "marathi": "mr",
	"guj": "gu", "gujarati": "gu",
	"pan": "pa", "punjabi": "pa",
	"urd": "ur", "urdu": "ur",
	"san": "sa", "sanskrit": "sa",
	"fra": "fr", "fre": "fr", "french": "fr",
	"deu": "de", "ger": "de", "german": "de",
	"spa": "es", "esp": "es", "spanish": "es",
	"ita": "it", "italian": "it",
	"por": "pt", "portuguese": "pt",
	"cmn": "zh", "zho": "zh", "chi": "zh", "chinese": "zh", "mandarin": "zh",
	"jpn": "ja", "japanese": "ja",
	"kor": "ko", "korean": "ko",
	"ara": "ar", "arabic": "ar",
	"rus": "ru", "russian": "ru",
}

// IsKnownCode reports whether code is a recognized primary subtag.
func IsKnownCode(code string) bool { return knownCodes[code] }

// NormalizeCode lowercases a vendor language tag, strips any region
// suffix ("en-US" → "en", "hi_IN" → "hi") and resolves ISO-639-2 codes
// and spelled-out names. Empty input normalizes to "".
func NormalizeCode(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	if mapped, ok := codeAliases[tag]; ok {
		return mapped
	}
	return tag
}

// scriptRange is a contiguous Unicode block tied to one language.
type scriptRange struct {
	lo, hi rune
	code   string
}

// Ordered: the first matching script wins. Blocks were chosen for
// scripts that identify a single language in this service's code set.
var scriptRanges = []scriptRange{
	{0x0900, 0x097F, "hi"}, // Devanagari
	{0x0980, 0x09FF, "bn"}, // Bengali
	{0x0A00, 0x0A7F, "pa"}, // Gurmukhi
	{0x0A80, 0x0AFF, "gu"}, // Gujarati
	{0x0B80, 0x0BFF, "ta"}, // Tamil
	{0x0C00, 0x0C7F, "te"}, // Telugu
	{0x0C80, 0x0CFF, "kn"}, // Kannada
	{0x0D00, 0x0D7F, "ml"}, // Malayalam
	{0x0600, 0x06FF, "ar"}, // Arabic
	{0x0400, 0x04FF, "ru"}, // Cyrillic
	{0x4E00, 0x9FFF, "zh"}, // CJK Unified Ideographs
	{0x3040, 0x30FF, "ja"}, // Hiragana + Katakana
	{0xAC00, 0xD7AF, "ko"}, // Hangul
}

// Latin-script languages have no distinguishing block, so fall back to
// frequent-word matching over the transcript.
var latinStopwords = []struct {
	code  string
	words []string
}{
	{"fr", []string{"le", "la", "et", "est", "dans", "pour", "avec", "que", "une", "vous", "nous"}},
	{"de", []string{"der", "die", "das", "und", "ist", "nicht", "ein", "eine", "mit", "ich", "sie"}},
	{"es", []string{"el", "los", "las", "es", "por", "con", "que", "una", "se", "yo", "ella"}},
	{"it", []string{"il", "di", "che", "per", "con", "una", "gli", "sono", "io", "lei"}},
	{"pt", []string{"o", "em", "para", "com", "que", "uma", "você", "não", "os", "ele"}},
}

// DetectFromText infers a language code from transcript text: first by
// Unicode script, then by Latin stopword matching. Returns "en" when
// nothing matches — the shared "no confident detection" default.
func DetectFromText(text string) string {
	if text == "" {
		return "en"
	}

	for _, r := range text {
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				return sr.code
			}
		}
	}

	fields := strings.Fields(strings.ToLower(text))
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[strings.Trim(f, ".,!?;:\"'()")] = true
	}
	for _, sw := range latinStopwords {
		hits := 0
		for _, w := range sw.words {
			if words[w] {
				hits++
			}
		}
		if hits >= 2 {
			return sw.code
		}
	}

	return "en"
}

// filenameKeywords drive the mock providers: a spoken-language name in
// the file name decides the detected code.
var filenameKeywords = []struct {
	keyword string
	code    string
}{
	{"hindi", "hi"}, {"tamil", "ta"}, {"telugu", "te"}, {"kannada", "kn"},
	{"malayalam", "ml"}, {"bengali", "bn"}, {"marathi", "mr"},
	{"gujarati", "gu"}, {"punjabi", "pa"}, {"urdu", "ur"},
	{"sanskrit", "sa"}, {"french", "fr"}, {"german", "de"},
	{"spanish", "es"}, {"chinese", "zh"}, {"japanese", "ja"},
	{"korean", "ko"}, {"arabic", "ar"}, {"russian", "ru"},
}

// DetectFromFilename returns the code named by a keyword in the file
// name, or "en" when none appears.
func DetectFromFilename(name string) string {
	name = strings.ToLower(name)
	for _, kw := range filenameKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.code
		}
	}
	return "en"
}
