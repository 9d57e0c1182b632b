// Package report renders an analysis as a human-readable markdown document,
// with optional HTML conversion for the web UI.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ssanyal/graha/internal/analysis"
	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
)

// Data is everything a full report needs. Chart and Support may be nil for a
// numerology-only report; the corresponding sections are skipped.
type Data struct {
	Numbers *numerology.CoreNumbers
	Chart   *chart.Summary
	Support *analysis.SupportAnalysis
}

// markdown converter shared by all renders. Tables need the GFM extension.
var converter = goldmark.New(goldmark.WithExtensions(extension.Table))

// Build renders the report as markdown.
func Build(d *Data) (string, error) {
	if d == nil || d.Numbers == nil {
		return "", errors.NewValidation("report requires at least the core numbers")
	}

	var b strings.Builder
	b.WriteString("# Vedic Numerology & Dignity Report\n\n")
	writeNumbers(&b, d.Numbers)
	if d.Chart != nil {
		writeChart(&b, d.Chart)
	}
	if d.Support != nil {
		writeSupport(&b, d.Support)
	}
	fmt.Fprintf(&b, "---\n\n*Generated %s*\n", time.Now().UTC().Format("2006-01-02 15:04 UTC"))
	return b.String(), nil
}

// RenderHTML converts a markdown report to HTML.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", errors.NewInternal(err)
	}
	return buf.String(), nil
}

func writeNumbers(b *strings.Builder, n *numerology.CoreNumbers) {
	b.WriteString("## Core Numbers\n\n")
	fmt.Fprintf(b, "| Number | Value | Ruling Planet | Signification |\n")
	fmt.Fprintf(b, "|---|---|---|---|\n")
	fmt.Fprintf(b, "| Mulanka (Birth) | %d | %s %s | %s |\n",
		n.Mulanka, n.MulankaPlanet.Symbol(), n.MulankaPlanet.DisplayName(), qualities(n.Mulanka))
	fmt.Fprintf(b, "| Bhagyanka (Destiny) | %d | %s %s | %s |\n\n",
		n.Bhagyanka, n.BhagyankaPlanet.Symbol(), n.BhagyankaPlanet.DisplayName(), qualities(n.Bhagyanka))

	if n.DayCorrectionApplied {
		fmt.Fprintf(b, "Birth fell before local sunrise; the Vedic day %s was used for the Mulanka.\n\n",
			n.EffectiveDate.Format("2006-01-02"))
	}
	fmt.Fprintf(b, "**Relationship:** %s\n\n", n.Relationship)
}

func writeChart(b *strings.Builder, s *chart.Summary) {
	b.WriteString("## Birth Chart (Sidereal)\n\n")
	fmt.Fprintf(b, "Ayanamsa: %s (%.4f°) · Julian Day %.5f\n\n",
		s.AyanamsaSystem, s.AyanamsaValue, s.JulianDay)
	if s.Ascendant != nil {
		fmt.Fprintf(b, "Ascendant: %s %s %.2f°\n\n",
			s.Ascendant.Sign.Symbol(), s.Ascendant.Sign, s.Ascendant.DegreesInSign)
	}

	fmt.Fprintf(b, "| Planet | Placement | Motion | Notes |\n")
	fmt.Fprintf(b, "|---|---|---|---|\n")
	for _, p := range vedic.Planets {
		pos, ok := s.Positions[p.String()]
		if !ok {
			continue
		}
		motion := "Direct"
		if pos.Retrograde {
			motion = "Retrograde"
		}
		var notes []string
		if pos.Combust {
			notes = append(notes, "combust")
		}
		fmt.Fprintf(b, "| %s %s | %s | %s | %s |\n",
			p.Symbol(), p.DisplayName(), pos.Placement(), motion, strings.Join(notes, ", "))
	}
	b.WriteString("\n")
}

func writeSupport(b *strings.Builder, a *analysis.SupportAnalysis) {
	b.WriteString("## Astrological Support\n\n")
	writePlanetSupport(b, "Mulanka", &a.Mulanka)
	writePlanetSupport(b, "Bhagyanka", &a.Bhagyanka)
	fmt.Fprintf(b, "**Average score:** %.1f/100\n\n", a.AverageScore)
	fmt.Fprintf(b, "**Harmony:** %s\n\n", a.HarmonyLevel)
}

func writePlanetSupport(b *strings.Builder, label string, ps *analysis.PlanetSupport) {
	fmt.Fprintf(b, "### %s %d — %s\n\n", label, ps.Number, ps.Planet.DisplayName())
	fmt.Fprintf(b, "- Dignity: %s (%.1f/100, %s)\n", ps.DignityType, ps.Score, ps.SupportLevel)
	if ps.Details != nil {
		fmt.Fprintf(b, "- Placement: %s %.2f°, lord %s (%s)\n",
			ps.Details.Sign, ps.Details.DegreesInSign, ps.Details.SignLord, ps.Details.FriendshipStr)
		fmt.Fprintf(b, "- Modifiers: %s\n", ps.Details.Explanation)
	}
	b.WriteString("\n")
}

func qualities(n int) string {
	q, err := vedic.NumberQualities(n)
	if err != nil {
		return ""
	}
	return q
}
