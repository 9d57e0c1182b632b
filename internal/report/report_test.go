package report

import (
	"strings"
	"testing"
	"time"

	"github.com/ssanyal/graha/internal/analysis"
	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/dignity"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
)

func sampleNumbers() *numerology.CoreNumbers {
	return &numerology.CoreNumbers{
		Mulanka:         9,
		MulankaPlanet:   vedic.Mars,
		Bhagyanka:       3,
		BhagyankaPlanet: vedic.Jupiter,
		EffectiveDate:   time.Date(1984, 8, 27, 0, 0, 0, 0, time.UTC),
		Relationship:    "Dynamic Tension: Personality and destiny present significant challenges",
	}
}

func sampleData() *Data {
	marsResult := dignity.Score(vedic.Mars, 280, dignity.Modifiers{})
	jupiterResult := dignity.Score(vedic.Jupiter, 95, dignity.Modifiers{})

	return &Data{
		Numbers: sampleNumbers(),
		Chart: &chart.Summary{
			AyanamsaSystem: "lahiri",
			AyanamsaValue:  23.66,
			JulianDay:      2445939.5,
			Ascendant:      &chart.Ascendant{Longitude: 75.9, Sign: vedic.Gemini, DegreesInSign: 15.9},
			Positions: map[string]*chart.Position{
				"Mars":    {Planet: vedic.Mars, Longitude: 280, Sign: vedic.Capricorn, DegreesInSign: 10, Retrograde: true},
				"Jupiter": {Planet: vedic.Jupiter, Longitude: 95, Sign: vedic.Cancer, DegreesInSign: 5, Combust: true},
			},
		},
		Support: &analysis.SupportAnalysis{
			Mulanka: analysis.PlanetSupport{
				Number: 9, Planet: vedic.Mars, Score: marsResult.FinalScore,
				SupportLevel: "Excellent Support", DignityType: marsResult.DignityType, Details: marsResult,
			},
			Bhagyanka: analysis.PlanetSupport{
				Number: 3, Planet: vedic.Jupiter, Score: jupiterResult.FinalScore,
				SupportLevel: "Excellent Support", DignityType: jupiterResult.DignityType, Details: jupiterResult,
			},
			AverageScore: (marsResult.FinalScore + jupiterResult.FinalScore) / 2,
			HarmonyLevel: "Excellent Harmony",
		},
	}
}

func TestBuildFullReport(t *testing.T) {
	md, err := Build(sampleData())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	for _, want := range []string{
		"# Vedic Numerology & Dignity Report",
		"## Core Numbers",
		"Mulanka (Birth) | 9 |",
		"Mars (Mangal)",
		"Jupiter (Guru)",
		"## Birth Chart (Sidereal)",
		"Retrograde",
		"combust",
		"## Astrological Support",
		"Excellent Harmony",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestBuildNumerologyOnly(t *testing.T) {
	md, err := Build(&Data{Numbers: sampleNumbers()})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if !strings.Contains(md, "## Core Numbers") {
		t.Error("numbers section missing")
	}
	if strings.Contains(md, "## Birth Chart") || strings.Contains(md, "## Astrological Support") {
		t.Error("chart/support sections present without data")
	}
}

func TestBuildDayCorrectionNote(t *testing.T) {
	n := sampleNumbers()
	n.DayCorrectionApplied = true
	n.EffectiveDate = time.Date(1984, 8, 26, 0, 0, 0, 0, time.UTC)

	md, err := Build(&Data{Numbers: n})
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if !strings.Contains(md, "before local sunrise") || !strings.Contains(md, "1984-08-26") {
		t.Error("sunrise correction note missing")
	}
}

func TestBuildRejectsEmpty(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("nil data accepted")
	}
	if _, err := Build(&Data{}); err == nil {
		t.Error("missing numbers accepted")
	}
}

func TestRenderHTML(t *testing.T) {
	md, err := Build(sampleData())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	html, err := RenderHTML(md)
	if err != nil {
		t.Fatalf("RenderHTML error = %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Error("no heading in HTML")
	}
	if !strings.Contains(html, "<table") {
		t.Error("markdown tables did not render as HTML tables")
	}
}
