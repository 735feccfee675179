package vowel

// SegmentPreferences lists, per glide segment, the keys tried before the
// dataset scan. High-front prefers the near-high ɪ over i, following the
// conventional placement of diphthong onsets and offsets.
var SegmentPreferences = map[string][]string{
	"high-front":  {"ɪ", "i"},
	"mid-front":   {"ɛ"},
	"high-back":   {"ʊ", "u"},
	"mid-back":    {"ɔ"},
	"mid-central": {"ə", "ʌ"},
	"low-front":   {"æ"},
	"low-back":    {"ɑ2", "ɑ"},
	"low-central": {"ɑ"},
}

// CanonicalKey picks the simple vowel that stands for a glide segment. The
// first preferred key that exists and is simple wins; otherwise the first
// simple phoneme, in declared order, whose base descriptor equals the
// segment.
func (d *Dataset) CanonicalKey(segment string) (string, bool) {
	for _, key := range SegmentPreferences[segment] {
		if p, ok := d.Get(key); ok && !p.IsGliding() {
			return key, true
		}
	}
	for _, p := range d.phonemes {
		if p.IsGliding() {
			continue
		}
		if BaseDescriptor(p.Tongue) == segment {
			return p.Key, true
		}
	}
	return "", false
}

// GlideKeys resolves each segment of a gliding phoneme to its canonical key,
// in glide order. Unresolvable segments are omitted and consecutive repeats
// collapse into one. Simple and unknown phonemes yield nil.
func (d *Dataset) GlideKeys(key string) []string {
	p, ok := d.Get(key)
	if !ok || !p.IsGliding() {
		return nil
	}
	var keys []string
	for _, seg := range Segments(p.Tongue) {
		k, ok := d.CanonicalKey(seg)
		if !ok {
			continue
		}
		if n := len(keys); n > 0 && keys[n-1] == k {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// RelatedKeys returns the distinct simple vowels a gliding phoneme links to.
// The result is recomputed on every call from the current records.
func (d *Dataset) RelatedKeys(key string) []string {
	glide := d.GlideKeys(key)
	if len(glide) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(glide))
	keys := make([]string, 0, len(glide))
	for _, k := range glide {
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// Segments returns the glide segments of a gliding phoneme's label, nil for
// simple or unknown phonemes.
func (d *Dataset) Segments(key string) []string {
	p, ok := d.Get(key)
	if !ok || !p.IsGliding() {
		return nil
	}
	return Segments(p.Tongue)
}
