package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ha1tch/vowelchart/internal/app"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/highlight"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// explorer is the line-oriented counterpart of the chart's pointer
// interactions: hover, select, search and play.
type explorer struct {
	ds   *vowel.Dataset
	view *highlight.View
	seq  *audio.Sequencer
	out  io.Writer
}

func cmdExplore(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart explore [-d data] [--selected key]")
		return
	}
	ds, _ := loadChart(o)

	seq, err := app.NewSequencer(cfg.Audio, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio disabled: %v\n", err)
		seq = nil
	}

	e := newExplorer(ds, seq, os.Stdout)
	e.view.SetSelected(o.selected)

	fmt.Printf("Vowels: %d (%d gliding)\n", ds.Len(), len(ds.Diphthongs()))
	fmt.Println("Commands: <word or symbol>, hover, select, clear, play, links, status, quit")
	fmt.Println()
	e.printStatus()

	e.run(os.Stdin)
	if seq != nil {
		seq.Wait()
	}
}

func newExplorer(ds *vowel.Dataset, seq *audio.Sequencer, out io.Writer) *explorer {
	return &explorer{ds: ds, view: highlight.New(ds), seq: seq, out: out}
}

func (e *explorer) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(e.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(e.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !e.exec(line) {
			return
		}
	}
}

// exec runs one command line and reports whether to keep going.
func (e *explorer) exec(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "quit", "exit", "q":
		return false
	case "hover":
		if arg != "" && !e.known(arg) {
			return true
		}
		e.view.SetHover(arg)
		e.printStatus()
	case "select":
		if arg != "" && !e.known(arg) {
			return true
		}
		e.view.SetSelected(arg)
		e.printStatus()
		e.prime(arg)
	case "clear":
		e.view.SetHover("")
		e.view.SetSelected("")
		e.printStatus()
	case "status":
		e.printStatus()
	case "links":
		e.printLinks()
	case "play":
		e.play(arg)
	case "help", "?":
		fmt.Fprintln(e.out, "Commands:")
		fmt.Fprintln(e.out, "  <word>        - Find and select a vowel by symbol or example word")
		fmt.Fprintln(e.out, "  hover <key>   - Hover a vowel (no key clears)")
		fmt.Fprintln(e.out, "  select <key>  - Select a vowel (no key clears)")
		fmt.Fprintln(e.out, "  clear         - Clear hover and selection")
		fmt.Fprintln(e.out, "  play [word]   - Play the selected vowel, or one of its example words")
		fmt.Fprintln(e.out, "  links         - Show the selected vowel's glide links")
		fmt.Fprintln(e.out, "  status        - Show current highlights")
		fmt.Fprintln(e.out, "  quit          - Exit")
	default:
		p, ok := e.ds.Search(line)
		if !ok {
			fmt.Fprintf(e.out, "No vowel matches %q\n", line)
			return true
		}
		e.view.SetSelected(p.Key)
		e.printStatus()
		e.prime(p.Key)
	}
	return true
}

func (e *explorer) known(key string) bool {
	if _, err := e.ds.MustGet(key); err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
		return false
	}
	return true
}

func (e *explorer) prime(key string) {
	if e.seq == nil || key == "" {
		return
	}
	if p, ok := e.ds.Get(key); ok {
		e.seq.PrimePhoneme(p)
	}
}

func (e *explorer) play(word string) {
	key := e.view.Selected()
	if key == "" {
		fmt.Fprintln(e.out, "Nothing selected")
		return
	}
	if e.seq == nil {
		fmt.Fprintln(e.out, "Audio is disabled")
		return
	}
	ctx := context.Background()
	var err error
	if word == "" {
		err = e.seq.PlayPhoneme(ctx, key)
	} else {
		err = e.seq.PlayWord(ctx, word)
	}
	if err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
	}
}

func (e *explorer) printStatus() {
	hovered, selected := e.view.Hovered(), e.view.Selected()
	if hovered == "" && selected == "" {
		fmt.Fprintln(e.out, "Nothing highlighted")
		return
	}
	if selected != "" {
		p, _ := e.ds.Get(selected)
		status := fmt.Sprintf("Selected: %s", p.Label())
		if linked := e.view.Linked(highlight.Selected); len(linked) > 0 {
			status += fmt.Sprintf(" [%s]", strings.Join(linked, " "))
		}
		if len(p.Examples) > 0 {
			status += " - " + strings.Join(p.Examples, ", ")
		}
		fmt.Fprintln(e.out, status)
	}
	if hovered != "" {
		p, _ := e.ds.Get(hovered)
		status := fmt.Sprintf("Hover: %s", p.Label())
		if linked := e.view.Linked(highlight.Hover); len(linked) > 0 {
			status += fmt.Sprintf(" [%s]", strings.Join(linked, " "))
		}
		fmt.Fprintln(e.out, status)
	}
}

func (e *explorer) printLinks() {
	key := e.view.Selected()
	if key == "" {
		fmt.Fprintln(e.out, "Nothing selected")
		return
	}
	segments := e.ds.Segments(key)
	if len(segments) < 2 {
		fmt.Fprintf(e.out, "%s is not a gliding vowel\n", key)
		return
	}
	fmt.Fprintf(e.out, "Glide %s:\n", key)
	for i, seg := range segments {
		target, ok := e.ds.CanonicalKey(seg)
		if !ok {
			target = "?"
		}
		fmt.Fprintf(e.out, "  %d: %s -> %s\n", i+1, seg, target)
	}
}
