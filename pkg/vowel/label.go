package vowel

import "strings"

// GlideArrow separates the segments of a gliding tongue label.
const GlideArrow = "→"

// rhoticMarker is the suffix marking r-coloured vowels in tongue labels.
const rhoticMarker = "+r"

// glideReplacer unifies the glide separators seen in datasets: ASCII "->"
// and the mojibake left behind by a UTF-8 arrow decoded as Windows-1252.
var glideReplacer = strings.NewReplacer("â†’", GlideArrow, "->", GlideArrow)

// Row is a named tongue-height row of the chart.
type Row int

const (
	RowUnknown Row = iota
	RowHigh
	RowNearHigh
	RowUpperMid
	RowMid
	RowLowerMid
	RowNearOpen
	RowOpen
)

var rowNames = [...]string{
	RowUnknown:  "",
	RowHigh:     "high",
	RowNearHigh: "nearHigh",
	RowUpperMid: "upperMid",
	RowMid:      "mid",
	RowLowerMid: "lowerMid",
	RowNearOpen: "nearOpen",
	RowOpen:     "open",
}

func (r Row) String() string {
	if r < 0 || int(r) >= len(rowNames) {
		return ""
	}
	return rowNames[r]
}

// Rows returns every known row, top to bottom.
func Rows() []Row {
	return []Row{RowHigh, RowNearHigh, RowUpperMid, RowMid, RowLowerMid, RowNearOpen, RowOpen}
}

// ParseRow maps a dataset row name (case-insensitive) to a Row.
func ParseRow(s string) (Row, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Rows() {
		if strings.EqualFold(s, rowNames[r]) {
			return r, true
		}
	}
	return RowUnknown, false
}

// Column is a named tongue-backness column of the chart.
type Column int

const (
	ColumnUnknown Column = iota
	ColFront
	ColFrontCentral
	ColCentral
	ColBackCentral
	ColBack
)

var columnNames = [...]string{
	ColumnUnknown:   "",
	ColFront:        "front",
	ColFrontCentral: "frontCentral",
	ColCentral:      "central",
	ColBackCentral:  "backCentral",
	ColBack:         "back",
}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return ""
	}
	return columnNames[c]
}

// Columns returns every known column, front to back.
func Columns() []Column {
	return []Column{ColFront, ColFrontCentral, ColCentral, ColBackCentral, ColBack}
}

// ParseColumn maps a dataset column name (case-insensitive) to a Column.
func ParseColumn(s string) (Column, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Columns() {
		if strings.EqualFold(s, columnNames[c]) {
			return c, true
		}
	}
	return ColumnUnknown, false
}

// Slot is a parsed articulatory position.
type Slot struct {
	Row Row
	Col Column
}

func (s Slot) String() string {
	return s.Row.String() + "/" + s.Col.String()
}

// tongueRule maps a base descriptor to a slot. Rules are tried in order; an
// exact rule matches the whole descriptor, the others match a prefix.
type tongueRule struct {
	prefix string
	exact  bool
	slot   Slot
}

// tongueTable is the precedence table for ParseTongue. Mid-back and low-back
// map to the back-central column; "low" maps to the near-open row.
var tongueTable = []tongueRule{
	{prefix: "high-front", slot: Slot{RowHigh, ColFront}},
	{prefix: "high-back", slot: Slot{RowHigh, ColBack}},
	{prefix: "high-central", slot: Slot{RowHigh, ColCentral}},
	{prefix: "mid-front", slot: Slot{RowMid, ColFront}},
	{prefix: "mid-back", slot: Slot{RowMid, ColBackCentral}},
	{prefix: "mid-central", slot: Slot{RowMid, ColCentral}},
	{prefix: "central", exact: true, slot: Slot{RowMid, ColCentral}},
	{prefix: "low-front", slot: Slot{RowNearOpen, ColFront}},
	{prefix: "low-back", slot: Slot{RowNearOpen, ColBackCentral}},
	{prefix: "low-central", slot: Slot{RowNearOpen, ColCentral}},
}

// NormalizeTongue lowercases and trims a tongue label and unifies the glide
// separator to GlideArrow. It is idempotent.
func NormalizeTongue(s string) string {
	return glideReplacer.Replace(strings.TrimSpace(strings.ToLower(s)))
}

// StripRhotic removes every rhotic marker from a label.
func StripRhotic(s string) string {
	return strings.ReplaceAll(s, rhoticMarker, "")
}

// BaseDescriptor returns the normalised, rhotic-free descriptor before the
// first glide arrow: "Low-Central -> High-Front" gives "low-central".
func BaseDescriptor(tongue string) string {
	base, _, _ := strings.Cut(NormalizeTongue(tongue), GlideArrow)
	return strings.TrimSpace(StripRhotic(base))
}

// Segments splits a gliding label into its rhotic-free, non-empty segments.
// A label without a glide arrow has no segments.
func Segments(tongue string) []string {
	normalized := StripRhotic(NormalizeTongue(tongue))
	if !strings.Contains(normalized, GlideArrow) {
		return nil
	}
	var segments []string
	for _, s := range strings.Split(normalized, GlideArrow) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// ParseTongue resolves the slot named by a tongue label's base descriptor.
// Unrecognised or empty labels report false.
func ParseTongue(tongue string) (Slot, bool) {
	base := BaseDescriptor(tongue)
	if base == "" {
		return Slot{}, false
	}
	for _, rule := range tongueTable {
		if rule.exact {
			if base == rule.prefix {
				return rule.slot, true
			}
			continue
		}
		if strings.HasPrefix(base, rule.prefix) {
			return rule.slot, true
		}
	}
	return Slot{}, false
}
