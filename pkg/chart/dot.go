package chart

import (
	"fmt"
	"strings"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// GenerateDOT renders the diphthong link graph in Graphviz DOT format:
// simple vowels as circles, gliding vowels as boxes, with one edge per
// resolved glide segment, labelled with the segment.
func GenerateDOT(ds *vowel.Dataset, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph Vowels {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	phonemes := ds.Distinct()
	for _, p := range phonemes {
		shape := "circle"
		if p.IsGliding() {
			shape = "box"
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [shape=%s, label=\"%s\"];\n",
			escapeDOT(p.Key), shape, escapeDOT(p.Label())))
	}
	sb.WriteString("\n")

	for _, p := range phonemes {
		if !p.IsGliding() {
			continue
		}
		for i, seg := range ds.Segments(p.Key) {
			target, ok := ds.CanonicalKey(seg)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%d: %s\"];\n",
				escapeDOT(p.Key), escapeDOT(target), i+1, escapeDOT(seg)))
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
