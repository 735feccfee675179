package vowel

import (
	"fmt"
	"strings"
)

// Dataset is an ordered, read-only collection of phonemes with a key index.
// Declared order is preserved for iteration and for every "first match"
// rule; the index is last-write-wins when keys repeat.
type Dataset struct {
	phonemes []Phoneme
	byKey    map[string]int
}

// NewDataset builds a dataset from records in declared order.
func NewDataset(phonemes []Phoneme) *Dataset {
	d := &Dataset{
		phonemes: make([]Phoneme, len(phonemes)),
		byKey:    make(map[string]int, len(phonemes)),
	}
	copy(d.phonemes, phonemes)
	for i, p := range d.phonemes {
		d.byKey[p.Key] = i
	}
	return d
}

// Len returns the number of records, duplicates included.
func (d *Dataset) Len() int {
	return len(d.phonemes)
}

// Phonemes returns the records in declared order. Callers must not modify
// the returned slice.
func (d *Dataset) Phonemes() []Phoneme {
	return d.phonemes
}

// Get looks up a phoneme by key.
func (d *Dataset) Get(key string) (Phoneme, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return Phoneme{}, false
	}
	return d.phonemes[i], true
}

// MustGet looks up a phoneme and returns ErrUnknownPhoneme when it is absent.
func (d *Dataset) MustGet(key string) (Phoneme, error) {
	p, ok := d.Get(key)
	if !ok {
		return Phoneme{}, fmt.Errorf("%w: %q", ErrUnknownPhoneme, key)
	}
	return p, nil
}

// Keys returns the keys in declared order.
func (d *Dataset) Keys() []string {
	keys := make([]string, len(d.phonemes))
	for i, p := range d.phonemes {
		keys[i] = p.Key
	}
	return keys
}

// Distinct returns one record per key in order of first appearance. Each
// is the record Get returns for that key, so a repeated key yields its
// last declaration.
func (d *Dataset) Distinct() []Phoneme {
	out := make([]Phoneme, 0, len(d.byKey))
	seen := make(map[string]bool, len(d.byKey))
	for _, p := range d.phonemes {
		if seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		out = append(out, d.phonemes[d.byKey[p.Key]])
	}
	return out
}

// Monophthongs returns the simple vowels in declared order.
func (d *Dataset) Monophthongs() []Phoneme {
	var out []Phoneme
	for _, p := range d.phonemes {
		if !p.IsGliding() {
			out = append(out, p)
		}
	}
	return out
}

// Diphthongs returns the gliding vowels in declared order.
func (d *Dataset) Diphthongs() []Phoneme {
	var out []Phoneme
	for _, p := range d.phonemes {
		if p.IsGliding() {
			out = append(out, p)
		}
	}
	return out
}

// Issue is a structural problem found by Validate.
type Issue struct {
	Index   int
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("phoneme %d (%q): %s", i.Index, i.Key, i.Message)
}

// Validate reports problems that make records ambiguous or unplaceable by
// label: empty keys, duplicate keys and tongue labels no rule recognises.
// None of them stop the chart from rendering.
func (d *Dataset) Validate() []Issue {
	var issues []Issue
	seen := make(map[string]int, len(d.phonemes))
	for i, p := range d.phonemes {
		if strings.TrimSpace(p.Key) == "" {
			issues = append(issues, Issue{Index: i, Message: "empty key"})
			continue
		}
		if first, dup := seen[p.Key]; dup {
			issues = append(issues, Issue{Index: i, Key: p.Key,
				Message: fmt.Sprintf("duplicate key, shadows record %d", first)})
		}
		seen[p.Key] = i

		if p.Tongue == "" {
			continue
		}
		if _, ok := ParseTongue(p.Tongue); !ok {
			issues = append(issues, Issue{Index: i, Key: p.Key,
				Message: fmt.Sprintf("unrecognised tongue label %q", p.Tongue)})
		}
		for _, seg := range Segments(p.Tongue) {
			if _, ok := d.CanonicalKey(seg); !ok {
				issues = append(issues, Issue{Index: i, Key: p.Key,
					Message: fmt.Sprintf("glide segment %q has no simple vowel", seg)})
			}
		}
	}
	return issues
}

// NormalizeQuery prepares a search query: trimmed, lowercased, with one
// surrounding pair of slashes removed ("/ɪ/" matches "ɪ").
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.TrimPrefix(q, "/")
	return strings.TrimSuffix(q, "/")
}

// Search finds the phoneme a query refers to. Keys, IPA and display strings
// are matched exactly first; failing that, the first phoneme with an example
// word containing the query wins.
func (d *Dataset) Search(q string) (Phoneme, bool) {
	query := NormalizeQuery(q)
	if query == "" {
		return Phoneme{}, false
	}
	for _, p := range d.phonemes {
		if NormalizeQuery(p.Key) == query || NormalizeQuery(p.IPA) == query || NormalizeQuery(p.Display) == query {
			return p, true
		}
	}
	for _, p := range d.phonemes {
		for _, w := range p.Examples {
			if strings.Contains(strings.ToLower(w), query) {
				return p, true
			}
		}
	}
	return Phoneme{}, false
}
