package ops

import (
	"context"
	"testing"

	"github.com/ssanyal/graha/internal/db"
)

func TestAnalyzeNoSave(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Analyze(context.Background(), database, cfg, AnalyzeInput{
		BirthInput:            BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		SkipSunriseCorrection: true,
		NoSave:                true,
	})
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if out.ID != "" {
		t.Errorf("no_save analysis has ID %q", out.ID)
	}

	_, total, err := db.ListAnalyses(database, "", 10, 0)
	if err != nil {
		t.Fatalf("ListAnalyses error = %v", err)
	}
	if total != 0 {
		t.Errorf("analysis persisted despite no_save: %d", total)
	}
}

func TestAnalyzeSupportConsistency(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Analyze(context.Background(), database, cfg, AnalyzeInput{
		BirthInput:            BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		SkipSunriseCorrection: true,
		NoSave:                true,
	})
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}

	// The support section must agree with the numbers it scores.
	if out.Support.Mulanka.Planet != out.Numbers.MulankaPlanet {
		t.Errorf("support mulanka planet = %v, numbers say %v",
			out.Support.Mulanka.Planet, out.Numbers.MulankaPlanet)
	}
	if out.Support.Bhagyanka.Planet != out.Numbers.BhagyankaPlanet {
		t.Errorf("support bhagyanka planet = %v, numbers say %v",
			out.Support.Bhagyanka.Planet, out.Numbers.BhagyankaPlanet)
	}
	wantAvg := (out.Support.Mulanka.Score + out.Support.Bhagyanka.Score) / 2
	if out.Support.AverageScore != wantAvg {
		t.Errorf("average = %g, want %g", out.Support.AverageScore, wantAvg)
	}
}
