// Package highlight holds the hover/selection state shared by every view of
// a vowel chart and answers which markers and rows to highlight.
//
// A View is owned by one event loop. Every mutation recomputes the linked
// sets from the current dataset and notifies subscribers synchronously, so
// all views redraw from the same complete state.
package highlight

import "github.com/ha1tch/vowelchart/pkg/vowel"

// Linker resolves the simple vowels a phoneme links to. *vowel.Dataset
// implements it.
type Linker interface {
	RelatedKeys(key string) []string
}

var _ Linker = (*vowel.Dataset)(nil)

// Kind selects which interaction a query is about.
type Kind int

const (
	Hover Kind = iota
	Selected
)

func (k Kind) String() string {
	if k == Selected {
		return "selected"
	}
	return "hover"
}

// Flags says why a key is highlighted. Both may be set at once.
type Flags struct {
	Direct bool `json:"direct"`
	Linked bool `json:"linked"`
}

// Any reports whether either flag is set.
func (f Flags) Any() bool {
	return f.Direct || f.Linked
}

// View is the interaction state. The zero value is not usable; call New.
type View struct {
	linker       Linker
	hovered      string
	selected     string
	hoverLinked  map[string]bool
	selectLinked map[string]bool
	subscribers  []func(*View)
}

// New returns a view with nothing hovered or selected.
func New(linker Linker) *View {
	return &View{linker: linker}
}

// Subscribe registers fn to run after every mutation. Subscribers run in
// registration order on the mutating goroutine.
func (v *View) Subscribe(fn func(*View)) {
	v.subscribers = append(v.subscribers, fn)
}

// SetHover sets the hovered key; "" clears it.
func (v *View) SetHover(key string) {
	v.hovered = key
	v.sync()
}

// SetSelected sets the selected key; "" clears it.
func (v *View) SetSelected(key string) {
	v.selected = key
	v.sync()
}

// Hovered returns the hovered key, "" when none.
func (v *View) Hovered() string { return v.hovered }

// Selected returns the selected key, "" when none.
func (v *View) Selected() string { return v.selected }

// sync recomputes both linked sets and pushes the new state out.
func (v *View) sync() {
	v.hoverLinked = v.linkedSet(v.hovered)
	v.selectLinked = v.linkedSet(v.selected)
	for _, fn := range v.subscribers {
		fn(v)
	}
}

func (v *View) linkedSet(key string) map[string]bool {
	if key == "" || v.linker == nil {
		return nil
	}
	related := v.linker.RelatedKeys(key)
	if len(related) == 0 {
		return nil
	}
	set := make(map[string]bool, len(related))
	for _, k := range related {
		set[k] = true
	}
	return set
}

// IsHighlighted reports whether key is the current hover/selection target
// (Direct) or one of the simple vowels it glides through (Linked).
func (v *View) IsHighlighted(key string, kind Kind) Flags {
	current, linked := v.hovered, v.hoverLinked
	if kind == Selected {
		current, linked = v.selected, v.selectLinked
	}
	if key == "" {
		return Flags{}
	}
	return Flags{
		Direct: key == current,
		Linked: linked[key],
	}
}

// Classes reports the hover and selected classes of a chart marker. Direct
// and linked highlights look the same on the chart.
func (v *View) Classes(key string) (hover, selected bool) {
	return v.IsHighlighted(key, Hover).Any(), v.IsHighlighted(key, Selected).Any()
}

// RowSelected reports whether a table row is selected. Rows reflect only
// the direct selection.
func (v *View) RowSelected(key string) bool {
	return key != "" && key == v.selected
}

// Marker is a snapshot of one key's highlight classes.
type Marker struct {
	Key      string `json:"key"`
	Hover    bool   `json:"hover"`
	Selected bool   `json:"selected"`
}

// Apply evaluates every key against the current state in one pass.
func (v *View) Apply(keys []string) []Marker {
	out := make([]Marker, len(keys))
	for i, k := range keys {
		hover, selected := v.Classes(k)
		out[i] = Marker{Key: k, Hover: hover, Selected: selected}
	}
	return out
}

// Linked returns the linked keys of the current hover or selection, in
// dataset link order.
func (v *View) Linked(kind Kind) []string {
	key := v.hovered
	if kind == Selected {
		key = v.selected
	}
	if key == "" || v.linker == nil {
		return nil
	}
	return v.linker.RelatedKeys(key)
}
