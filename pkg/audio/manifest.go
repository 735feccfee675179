package audio

import "github.com/ha1tch/vowelchart/pkg/vowel"

// Kind distinguishes phoneme clips from example-word clips.
type Kind string

const (
	KindPhoneme Kind = "phoneme"
	KindWord    Kind = "word"
)

// Entry is one clip a recording tool must produce.
type Entry struct {
	Kind     Kind   `json:"kind"`
	Key      string `json:"key"`
	Text     string `json:"text"`
	Location string `json:"location"`
}

// speakable approximates each phoneme as a syllable a speech synthesiser
// will pronounce.
var speakable = map[string]string{
	"i":   "ee",
	"ɪ":   "ih",
	"ɪr":  "ear",
	"eɪ":  "ay",
	"ɛ":   "eh",
	"ɛr":  "air",
	"ɝ":   "er",
	"ɑ":   "ah",
	"u":   "oo",
	"ʊ":   "oo",
	"ʊr":  "tour",
	"ʌ":   "uh",
	"ə":   "uh",
	"oʊ":  "oh",
	"ɔ":   "aw",
	"ɔr":  "or",
	"æ":   "a",
	"aʊ":  "ow",
	"aʊr": "hour",
	"aɪ":  "eye",
	"aɪr": "ire",
	"ɑ2":  "ah",
	"ɑr":  "are",
}

// SpeakText is the text to synthesise for a phoneme clip: the known
// syllable, else the first example word, else the IPA, else the key.
func SpeakText(p vowel.Phoneme) string {
	if s, ok := speakable[p.Key]; ok {
		return s
	}
	if len(p.Examples) > 0 && p.Examples[0] != "" {
		return p.Examples[0]
	}
	if p.IPA != "" {
		return p.IPA
	}
	return p.Key
}

// Manifest lists every phoneme clip in dataset order, followed by one clip
// per distinct example-word slug in first-seen order. Words that slug to ""
// have no clip.
func Manifest(ds *vowel.Dataset, loc Locator) []Entry {
	phonemes := ds.Phonemes()
	out := make([]Entry, 0, len(phonemes))
	for _, p := range phonemes {
		out = append(out, Entry{
			Kind:     KindPhoneme,
			Key:      p.Key,
			Text:     SpeakText(p),
			Location: loc.PhonemeClip(p.Key),
		})
	}

	seen := make(map[string]bool)
	for _, p := range phonemes {
		for _, w := range p.Examples {
			slug := Slug(w)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			out = append(out, Entry{
				Kind:     KindWord,
				Key:      slug,
				Text:     w,
				Location: loc.WordClip(w),
			})
		}
	}
	return out
}
