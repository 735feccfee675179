// Command vowelview is an interactive terminal vowel chart.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/vowelchart/internal/app"
	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/highlight"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

const (
	// cellAspect is the height of a terminal cell relative to its width.
	cellAspect = 2.0

	sidebarDefault = 36
)

// Viewer holds all viewer state
type Viewer struct {
	screen   tcell.Screen
	ds       *vowel.Dataset
	resolver *chart.Resolver
	view     *highlight.View
	seq      *audio.Sequencer
	font     *opentype.Font
	log      *slog.Logger

	mode        Mode
	message     string
	messageType MessageType

	// Unix milliseconds when the message was shown. The flash ticker reads
	// it from its own goroutine.
	messageFlashStart atomic.Int64

	// Chart layout; markers are fixed, the viewport follows the screen size
	markers []chart.Marker
	vp      chart.Viewport
	canvasW int
	canvasH int

	// Sidebar table
	rows         []vowel.Phoneme
	sidebarWidth int
	tableTop     int // first row of the table on screen
	tableScroll  int
	tableHeight  int

	// Display options
	showLabels bool
	showGrid   bool

	// Left-button press detection
	leftMouseDown bool

	// Search input
	inputBuffer string
}

// Mode represents viewer mode
type Mode int

const (
	ModeChart Mode = iota
	ModeSearch
	ModeHelp
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
	MsgWarning                    // Warnings, flash
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// stderr belongs to the terminal; log to a file or nowhere.
	logger, closer, err := app.OpenLogger(cfg.Log, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	dataPath := cfg.Dataset.Path
	if len(os.Args) > 1 {
		dataPath = os.Args[1]
	}
	ds, resolver, err := app.LoadChart(dataPath, cfg.Chart.SheetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading chart: %v\n", err)
		os.Exit(1)
	}

	labelFont, err := app.LoadFont(cfg.Chart.FontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading font: %v\n", err)
		os.Exit(1)
	}

	v := NewViewer(ds, resolver, logger)
	v.font = labelFont
	v.showLabels = !cfg.Chart.HideLabels
	v.showGrid = !cfg.Chart.HideGrid
	if seq, err := app.NewSequencer(cfg.Audio, logger); err != nil {
		logger.Warn("audio disabled", "error", err)
		v.showMessage("Audio disabled: "+err.Error(), MsgWarning)
	} else {
		v.seq = seq
	}

	// Initialize screen
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()
	v.screen = screen

	if len(v.rows) > 0 {
		v.selectKey(v.rows[0].Key)
	}
	logger.Info("viewer started", "phonemes", ds.Len(), "audio", v.seq != nil)

	v.run()

	screen.Fini()
	if v.seq != nil {
		v.seq.Stop()
	}
}

// NewViewer creates a viewer over a loaded chart. The screen is attached
// by the caller.
func NewViewer(ds *vowel.Dataset, resolver *chart.Resolver, logger *slog.Logger) *Viewer {
	v := &Viewer{
		ds:           ds,
		resolver:     resolver,
		view:         highlight.New(ds),
		log:          logger,
		markers:      resolver.Layout(ds, chart.ViewChart),
		rows:         ds.Phonemes(),
		sidebarWidth: sidebarDefault,
		tableHeight:  1,
		showLabels:   true,
		showGrid:     true,
	}
	v.view.Subscribe(func(hv *highlight.View) {
		logger.Debug("highlight", "hover", hv.Hovered(), "selected", hv.Selected())
	})
	return v
}

// flashTicker wakes the event loop while a message is flashing, until done
// is closed.
func (v *Viewer) flashTicker(done <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			start := v.messageFlashStart.Load()
			if start == 0 {
				continue
			}
			if elapsed := nowMillis() - start; elapsed >= 0 && elapsed < 700 {
				v.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}
}

func (v *Viewer) run() {
	done := make(chan struct{})
	defer close(done)
	go v.flashTicker(done)

	for {
		v.layout()
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		case *tcell.EventInterrupt:
			// redraw only
		case nil:
			return
		}
	}
}

// layout recomputes every screen-dependent coordinate from the current
// screen size.
func (v *Viewer) layout() {
	w, h := v.screen.Size()
	v.sidebarWidth = min(sidebarDefault, max(w/2, 1))
	v.canvasW = max(w-v.sidebarWidth, 1)
	v.canvasH = max(h-2, 1)
	v.vp = chart.FitViewport(v.resolver.Diagram(), float64(v.canvasW), float64(v.canvasH), cellAspect)

	v.tableTop = 2
	v.tableHeight = max(min(len(v.rows), (v.canvasH-v.tableTop)/2), 1)
	v.clampScroll()
}

func (v *Viewer) clampScroll() {
	v.tableScroll = max(min(v.tableScroll, len(v.rows)-v.tableHeight), 0)
}

// ensureVisible scrolls the table so that row i is on screen.
func (v *Viewer) ensureVisible(i int) {
	if i < v.tableScroll {
		v.tableScroll = i
	} else if i >= v.tableScroll+v.tableHeight {
		v.tableScroll = i - v.tableHeight + 1
	}
	v.clampScroll()
}

func (v *Viewer) rowIndex(key string) int {
	for i, p := range v.rows {
		if p.Key == key {
			return i
		}
	}
	return -1
}

// selectKey selects a phoneme, scrolls its row into view and warms its
// clips.
func (v *Viewer) selectKey(key string) {
	v.view.SetSelected(key)
	if i := v.rowIndex(key); i >= 0 {
		v.ensureVisible(i)
	}
	if v.seq != nil {
		if p, ok := v.ds.Get(key); ok {
			v.seq.PrimePhoneme(p)
		}
	}
}

func (v *Viewer) moveSelection(delta int) {
	if len(v.rows) == 0 {
		return
	}
	i := v.rowIndex(v.view.Selected()) + delta
	i = max(min(i, len(v.rows)-1), 0)
	v.selectKey(v.rows[i].Key)
}

func (v *Viewer) playSelected() {
	key := v.view.Selected()
	if key == "" {
		v.showMessage("Nothing selected", MsgInfo)
		return
	}
	if v.seq == nil {
		v.showMessage("Audio disabled", MsgWarning)
		return
	}
	v.seq.PlayAsync(v.seq.Locator().PhonemeClip(key))
	p, _ := v.ds.Get(key)
	v.showMessage("Playing /"+p.IPA+"/", MsgInfo)
}

func (v *Viewer) playExample(n int) {
	p, ok := v.ds.Get(v.view.Selected())
	if !ok || n < 1 || n > len(p.Examples) {
		return
	}
	word := p.Examples[n-1]
	if audio.Slug(word) == "" {
		v.showMessage("No clip for "+word, MsgWarning)
		return
	}
	if v.seq == nil {
		v.showMessage("Audio disabled", MsgWarning)
		return
	}
	v.seq.PlayAsync(v.seq.Locator().WordClip(word))
	v.showMessage("Playing "+word, MsgInfo)
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch v.mode {
	case ModeSearch:
		return v.handleSearchKey(ev)
	case ModeHelp:
		v.mode = ModeChart
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if v.view.Selected() != "" {
			v.view.SetSelected("")
			return false
		}
		return true
	case tcell.KeyUp:
		v.moveSelection(-1)
	case tcell.KeyDown:
		v.moveSelection(1)
	case tcell.KeyPgUp:
		v.moveSelection(-v.tableHeight)
	case tcell.KeyPgDn:
		v.moveSelection(v.tableHeight)
	case tcell.KeyHome:
		v.moveSelection(-len(v.rows))
	case tcell.KeyEnd:
		v.moveSelection(len(v.rows))
	case tcell.KeyEnter:
		v.playSelected()
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return true
		case r == 'k':
			v.moveSelection(-1)
		case r == 'j':
			v.moveSelection(1)
		case r == ' ':
			v.playSelected()
		case r >= '1' && r <= '9':
			v.playExample(int(r - '0'))
		case r == '/':
			v.mode = ModeSearch
			v.inputBuffer = ""
		case r == 'l':
			v.showLabels = !v.showLabels
		case r == 'g':
			v.showGrid = !v.showGrid
		case r == 'c':
			v.view.SetHover("")
			v.view.SetSelected("")
		case r == 'o':
			v.openRendered()
		case r == '?':
			v.mode = ModeHelp
		}
	}
	return false
}

func (v *Viewer) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		v.mode = ModeChart
	case tcell.KeyEnter:
		v.mode = ModeChart
		v.search(v.inputBuffer)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(v.inputBuffer); len(r) > 0 {
			v.inputBuffer = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		v.inputBuffer += string(ev.Rune())
	}
	return false
}

func (v *Viewer) search(q string) {
	if vowel.NormalizeQuery(q) == "" {
		return
	}
	p, ok := v.ds.Search(q)
	if !ok {
		v.showMessage(fmt.Sprintf("No vowel matches %q", q), MsgError)
		return
	}
	v.selectKey(p.Key)
	v.showMessage("Found /"+p.IPA+"/", MsgSuccess)
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	// Wheel scrolls the table
	if x > v.canvasW {
		if buttons&tcell.WheelUp != 0 {
			v.tableScroll -= 3
			v.clampScroll()
			return
		}
		if buttons&tcell.WheelDown != 0 {
			v.tableScroll += 3
			v.clampScroll()
			return
		}
	}

	key := v.keyAt(x, y)
	if key != v.view.Hovered() {
		v.view.SetHover(key)
	}

	pressed := buttons&tcell.Button1 != 0
	if pressed && !v.leftMouseDown && key != "" {
		v.selectKey(key)
		if x < v.canvasW {
			v.playSelected()
		}
	}
	v.leftMouseDown = pressed
}

// keyAt returns the phoneme under a screen cell: a chart marker on the
// canvas or a table row in the sidebar.
func (v *Viewer) keyAt(x, y int) string {
	if x < v.canvasW && y < v.canvasH {
		p := v.vp.Invert(chart.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		radius := max(chart.MarkerRadius, 1.5/v.vp.ScaleX)
		if m, ok := chart.Hit(v.markers, p, radius); ok {
			return m.Key
		}
		return ""
	}
	if x > v.canvasW {
		row := y - v.tableTop
		if row >= 0 && row < v.tableHeight {
			if i := v.tableScroll + row; i < len(v.rows) {
				return v.rows[i].Key
			}
		}
	}
	return ""
}

// openRendered renders the current chart to a temporary PNG and opens it
// with the system viewer.
func (v *Viewer) openRendered() {
	tmpFile, err := os.CreateTemp("", "vowelchart-*.png")
	if err != nil {
		v.showMessage("Failed to create temp file", MsgError)
		return
	}
	tmpPath := tmpFile.Name()

	opts := chart.DefaultPNGOptions()
	opts.ShowLabels = v.showLabels
	opts.ShowGrid = v.showGrid
	opts.Font = v.font
	scene := chart.BuildScene(v.resolver, v.ds, v.view)
	if err := chart.RenderPNG(scene, tmpFile, opts); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		v.log.Error("render png", "error", err)
		v.showMessage("Failed to render PNG: "+err.Error(), MsgError)
		return
	}
	tmpFile.Close()

	var openCmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		openCmd = exec.Command("open", tmpPath)
	case "windows":
		openCmd = exec.Command("cmd", "/c", "start", "", tmpPath)
	default:
		openCmd = exec.Command("xdg-open", tmpPath)
	}
	if err := openCmd.Start(); err != nil {
		v.showMessage("Failed to open viewer: "+err.Error(), MsgError)
		os.Remove(tmpPath)
		return
	}
	go openCmd.Wait() //nolint:errcheck

	v.showMessage("Opened in viewer: "+tmpPath, MsgInfo)
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
	v.messageFlashStart.Store(nowMillis())
	if v.screen != nil {
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
