// Command vowelchart renders and inspects vowel charts.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/vowelchart/internal/app"
	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/pkg/audio"
	"github.com/ha1tch/vowelchart/pkg/chart"
	"github.com/ha1tch/vowelchart/pkg/highlight"
	"github.com/ha1tch/vowelchart/pkg/vowel"
)

const usage = `vowelchart - Vowel chart toolkit

Usage:
  vowelchart <command> [options]

Commands:
  svg        Render the chart as SVG
  png        Render the chart as PNG
  dot        Generate Graphviz DOT of the glide links
  layout     Print marker positions as JSON
  info       Show how each phoneme is placed and linked
  links      Show diphthong decompositions
  clips      List the audio clips a recording tool must produce
  convert    Convert a dataset between JSON and YAML
  validate   Check a dataset for structural problems
  explore    Hover, select and play phonemes interactively
  version    Print the build version

Common options:
  -d, --data <file>     dataset (.json, .yaml); default is the bundled set
  -s, --sheet <file>    sheet placement overrides (.yaml)

Examples:
  vowelchart svg -o chart.svg --selected aɪ
  vowelchart png -o chart.png -W 1600 -H 1100 --no-labels
  vowelchart dot | dot -Tpng -o links.png
  vowelchart info --view table
  vowelchart convert -d phonemes.json -o phonemes.yaml

Settings not given on the command line come from vowelchart.yaml
(or CONFIG_PATH) and the environment.

Use "vowelchart <command> -h" for more information about a command.
`

// options holds every flag any command accepts. Commands ignore the ones
// they do not use.
type options struct {
	data     string
	sheet    string
	output   string
	title    string
	hover    string
	selected string
	view     string
	base     string
	width    int
	height   int
	noLabels bool
	noGrid   bool
	pretty   bool
	help     bool
	args     []string
}

var cfg *config.Config

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logCfg := cfg.Log
	logCfg.Format = "text"
	if os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = "warn"
	}
	app.NewLogger(logCfg)

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "svg":
		cmdSVG(args)
	case "png":
		cmdPNG(args)
	case "dot":
		cmdDot(args)
	case "layout":
		cmdLayout(args)
	case "info":
		cmdInfo(args)
	case "links":
		cmdLinks(args)
	case "clips":
		cmdClips(args)
	case "convert":
		cmdConvert(args)
	case "validate":
		cmdValidate(args)
	case "explore":
		cmdExplore(args)
	case "version":
		fmt.Println(app.BuildVersion())
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func parseOptions(args []string) options {
	o := options{
		data:   cfg.Dataset.Path,
		sheet:  cfg.Chart.SheetPath,
		base:   cfg.Audio.BaseURL,
		width:  cfg.Chart.Width,
		height: cfg.Chart.Height,

		noLabels: cfg.Chart.HideLabels,
		noGrid:   cfg.Chart.HideGrid,
	}

	next := func(i *int) string {
		if *i+1 < len(args) {
			*i++
			return args[*i]
		}
		fmt.Fprintf(os.Stderr, "Missing value for %s\n", args[*i])
		os.Exit(1)
		return ""
	}
	nextInt := func(i *int) int {
		flag := args[*i]
		n, err := strconv.Atoi(next(i))
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid value for %s: must be a positive integer\n", flag)
			os.Exit(1)
		}
		return n
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-d", "--data":
			o.data = next(&i)
		case "-s", "--sheet":
			o.sheet = next(&i)
		case "-o", "--output":
			o.output = next(&i)
		case "-t", "--title":
			o.title = next(&i)
		case "--hover":
			o.hover = next(&i)
		case "--selected":
			o.selected = next(&i)
		case "--view":
			o.view = next(&i)
		case "--base":
			o.base = next(&i)
		case "-W", "--width":
			o.width = nextInt(&i)
		case "-H", "--height":
			o.height = nextInt(&i)
		case "--no-labels":
			o.noLabels = true
		case "--no-grid":
			o.noGrid = true
		case "--pretty":
			o.pretty = true
		case "-h", "--help":
			o.help = true
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[i])
				os.Exit(1)
			}
			o.args = append(o.args, args[i])
		}
	}
	return o
}

func loadChart(o options) (*vowel.Dataset, *chart.Resolver) {
	ds, r, err := app.LoadChart(o.data, o.sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading chart: %v\n", err)
		os.Exit(1)
	}
	slog.Debug("dataset loaded", "phonemes", ds.Len(), "source", datasetName(o))
	return ds, r
}

func datasetName(o options) string {
	if o.data == "" {
		return "bundled"
	}
	return o.data
}

// highlights builds the interaction state named by --hover and --selected.
func highlights(ds *vowel.Dataset, o options) *highlight.View {
	v := highlight.New(ds)
	for _, k := range []string{o.hover, o.selected} {
		if k != "" {
			if _, ok := ds.Get(k); !ok {
				fmt.Fprintf(os.Stderr, "Warning: unknown phoneme %q\n", k)
			}
		}
	}
	v.SetHover(o.hover)
	v.SetSelected(o.selected)
	return v
}

// writeOutput writes data to o.output, or stdout when unset.
func writeOutput(o options, data []byte) {
	if o.output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(o.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", o.output, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Written: %s\n", o.output)
}

func cmdSVG(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart svg [-d data] [-s sheet] [-o output.svg] [-t title] [--hover key] [--selected key] [-W width] [-H height] [--no-labels] [--no-grid]")
		return
	}
	ds, r := loadChart(o)
	scene := chart.BuildScene(r, ds, highlights(ds, o))
	svg := chart.RenderSVG(scene, chart.SVGOptions{
		Width:      o.width,
		Height:     o.height,
		Title:      o.title,
		FontSize:   cfg.Chart.FontSize,
		ShowLabels: !o.noLabels,
		ShowGrid:   !o.noGrid,
	})
	writeOutput(o, []byte(svg))
}

func cmdPNG(args []string) {
	o := parseOptions(args)
	if o.help || o.output == "" {
		fmt.Fprintln(os.Stderr, "Usage: vowelchart png -o output.png [-d data] [-s sheet] [--hover key] [--selected key] [-W width] [-H height] [--no-labels] [--no-grid]")
		if !o.help {
			os.Exit(1)
		}
		return
	}
	ds, r := loadChart(o)
	scene := chart.BuildScene(r, ds, highlights(ds, o))
	labelFont, err := app.LoadFont(cfg.Chart.FontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(o.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", o.output, err)
		os.Exit(1)
	}
	err = chart.RenderPNG(scene, f, chart.PNGOptions{
		Width:      o.width,
		Height:     o.height,
		FontSize:   cfg.Chart.FontSize,
		ShowLabels: !o.noLabels,
		ShowGrid:   !o.noGrid,
		Font:       labelFont,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", o.output, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Written: %s (%dx%d)\n", o.output, o.width, o.height)
}

func cmdDot(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart dot [-d data] [-o output.dot] [-t title]")
		return
	}
	ds, _ := loadChart(o)
	title := o.title
	if title == "" {
		title = fmt.Sprintf("%d vowels, %d glides", len(ds.Monophthongs()), len(ds.Diphthongs()))
	}
	writeOutput(o, []byte(chart.GenerateDOT(ds, title)))
}

func cmdLayout(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart layout [-d data] [-s sheet] [--view chart|table] [-o output.json] [--pretty]")
		return
	}
	ds, r := loadChart(o)
	markers := r.Layout(ds, chart.ParseView(o.view))

	var data []byte
	var err error
	if o.pretty {
		data, err = json.MarshalIndent(markers, "", "  ")
	} else {
		data, err = json.Marshal(markers)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding layout: %v\n", err)
		os.Exit(1)
	}
	writeOutput(o, append(data, '\n'))
}

func cmdInfo(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart info [-d data] [-s sheet] [--view chart|table] [key...]")
		return
	}
	ds, r := loadChart(o)
	view := chart.ParseView(o.view)

	phonemes := ds.Phonemes()
	if len(o.args) > 0 {
		phonemes = phonemes[:0:0]
		for _, k := range o.args {
			p, err := ds.MustGet(k)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			phonemes = append(phonemes, p)
		}
	}

	fmt.Printf("Dataset:     %s\n", datasetName(o))
	fmt.Printf("Phonemes:    %d (%d simple, %d gliding)\n", ds.Len(), len(ds.Monophthongs()), len(ds.Diphthongs()))
	fmt.Printf("View:        %s\n", view)
	fmt.Println()
	fmt.Printf("%-6s %-6s %-8s %8s %8s  %-30s %s\n", "KEY", "LABEL", "PLACED", "X", "Y", "TONGUE", "LINKS")
	for _, p := range phonemes {
		pt, strategy := r.ResolveWith(p, view)
		if strategy == chart.StrategyGrid || strategy == chart.StrategyLegacy {
			slog.Debug("fallback placement", "key", p.Key, "strategy", strategy)
		}
		links := strings.Join(ds.RelatedKeys(p.Key), " ")
		if links == "" {
			links = "-"
		}
		fmt.Printf("%-6s %-6s %-8s %8.1f %8.1f  %-30s %s\n",
			p.Key, p.Label(), strategy, pt.X, pt.Y, p.Tongue, links)
	}
}

func cmdLinks(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart links [-d data]")
		return
	}
	ds, _ := loadChart(o)

	var glides []vowel.Phoneme
	for _, p := range ds.Distinct() {
		if p.IsGliding() {
			glides = append(glides, p)
		}
	}
	if len(glides) == 0 {
		fmt.Println("No gliding vowels")
		return
	}
	for _, p := range glides {
		segments := ds.Segments(p.Key)
		parts := make([]string, len(segments))
		for i, seg := range segments {
			if k, ok := ds.CanonicalKey(seg); ok {
				parts[i] = fmt.Sprintf("%s (%s)", seg, k)
			} else {
				parts[i] = seg + " (?)"
			}
		}
		fmt.Printf("%-5s %s\n", p.Key, strings.Join(parts, " "+vowel.GlideArrow+" "))
	}
}

func cmdClips(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart clips [-d data] [--base dir] [-o manifest.json] [--pretty]")
		return
	}
	ds, _ := loadChart(o)
	manifest := audio.Manifest(ds, audio.NewLocator(o.base))

	var data []byte
	var err error
	if o.pretty {
		data, err = json.MarshalIndent(manifest, "", "  ")
	} else {
		data, err = json.Marshal(manifest)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding manifest: %v\n", err)
		os.Exit(1)
	}
	writeOutput(o, append(data, '\n'))
}

func cmdConvert(args []string) {
	o := parseOptions(args)
	if o.help || o.data == "" {
		fmt.Fprintln(os.Stderr, "Usage: vowelchart convert -d <input> [-o output] [--pretty]")
		if !o.help {
			os.Exit(1)
		}
		return
	}
	ds, err := vowel.LoadFile(o.data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", o.data, err)
		os.Exit(1)
	}

	if o.output == "" {
		ext := filepath.Ext(o.data)
		base := strings.TrimSuffix(o.data, ext)
		switch strings.ToLower(ext) {
		case ".yaml", ".yml":
			o.output = base + ".json"
		default:
			o.output = base + ".yaml"
		}
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(o.output)) {
	case ".yaml", ".yml":
		data, err = vowel.ToYAML(ds)
	case ".json":
		data, err = vowel.ToJSON(ds, o.pretty)
		data = append(data, '\n')
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format: %s\n", filepath.Ext(o.output))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", o.output, err)
		os.Exit(1)
	}
	writeOutput(o, data)
}

func cmdValidate(args []string) {
	o := parseOptions(args)
	if o.help {
		fmt.Println("Usage: vowelchart validate [-d data] [-s sheet]")
		return
	}
	ds, r := loadChart(o)

	issues := ds.Validate()
	for i, p := range ds.Phonemes() {
		if _, strategy := r.ResolveWith(p, chart.ViewTable); strategy == chart.StrategyGrid {
			issues = append(issues, vowel.Issue{Index: i, Key: p.Key, Message: "no placement; falls back to the tile grid"})
		}
	}
	if len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed: %d issue(s)\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  %s\n", issue)
		}
		os.Exit(1)
	}

	fmt.Printf("%s: valid, %d phonemes, %d glides\n", datasetName(o), ds.Len(), len(ds.Diphthongs()))
}
