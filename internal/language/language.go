package language

import (
	"fmt"
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "turkish")
}

var languages = []entry{
	{"af", "afr", "", "Afrikaans", []string{"afrikaans"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"az", "aze", "", "Azerbaijani", []string{"azerbaijani"}},
	{"bg", "bul", "", "Bulgarian", []string{"bulgarian"}},
	{"bn", "ben", "", "Bengali", []string{"bengali"}},
	{"ca", "cat", "", "Catalan", []string{"catalan"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"et", "est", "", "Estonian", []string{"estonian"}},
	{"eu", "eus", "baq", "Basque", []string{"basque"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"gl", "glg", "", "Galician", []string{"galician"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"hr", "hrv", "", "Croatian", []string{"croatian"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}},
	{"hy", "hye", "arm", "Armenian", []string{"armenian"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"is", "isl", "ice", "Icelandic", []string{"icelandic"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ka", "kat", "geo", "Georgian", []string{"georgian"}},
	{"kk", "kaz", "", "Kazakh", []string{"kazakh"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"lt", "lit", "", "Lithuanian", []string{"lithuanian"}},
	{"lv", "lav", "", "Latvian", []string{"latvian"}},
	{"ms", "msa", "may", "Malay", []string{"malay"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ro", "ron", "rum", "Romanian", []string{"romanian"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"sk", "slk", "slo", "Slovak", []string{"slovak"}},
	{"sl", "slv", "", "Slovenian", []string{"slovenian"}},
	{"sr", "srp", "", "Serbian", []string{"serbian"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"sw", "swa", "", "Swahili", []string{"swahili"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"te", "tel", "", "Telugu", []string{"telugu"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"tl", "tgl", "", "Tagalog", []string{"tagalog", "filipino"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"uz", "uzb", "", "Uzbek", []string{"uzbek"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize resolves a language given as an ISO 639-1 code, an ISO 639-2 code,
// or a full English name ("turkish") to the two-letter code the transcription
// model expects. Codes outside the built-in registry are accepted when they
// parse as a well-formed BCP 47 tag, so less common languages still pass
// through unchanged.
func Normalize(code string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "", fmt.Errorf("language code is empty")
	}
	if e := lookup(trimmed); e != nil {
		return e.code2, nil
	}
	tag, err := xlang.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("unrecognized language %q", code)
	}
	base, conf := tag.Base()
	if conf == xlang.No {
		return "", fmt.Errorf("unrecognized language %q", code)
	}
	return base.String(), nil
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}

// Info describes one registry entry for display purposes.
type Info struct {
	Code string
	ISO3 string
	Name string
}

// Supported returns the built-in registry sorted by display name.
func Supported() []Info {
	infos := make([]Info, 0, len(languages))
	for _, e := range languages {
		infos = append(infos, Info{Code: e.code2, ISO3: e.code3, Name: e.display})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
