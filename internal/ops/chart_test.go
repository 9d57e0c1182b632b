package ops

import (
	"context"
	"testing"

	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/vedic"
)

func TestChartOperation(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Chart(context.Background(), database, cfg, ChartInput{
		BirthInput: BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
	})
	if err != nil {
		t.Fatalf("Chart error = %v", err)
	}

	if len(out.Chart.Positions) != len(vedic.Planets) {
		t.Errorf("got %d positions, want %d", len(out.Chart.Positions), len(vedic.Planets))
	}
	for _, p := range vedic.Planets {
		pos, ok := out.Chart.Positions[p.String()]
		if !ok {
			t.Errorf("missing %s", p)
			continue
		}
		if pos.Longitude < 0 || pos.Longitude >= 360 {
			t.Errorf("%s longitude = %g, out of range", p, pos.Longitude)
		}
	}
	if out.Chart.Ascendant == nil {
		t.Error("no ascendant")
	}
	if len(out.Chart.Houses) != 12 {
		t.Errorf("got %d houses, want 12", len(out.Chart.Houses))
	}
	if out.Chart.AyanamsaValue <= 20 || out.Chart.AyanamsaValue >= 30 {
		t.Errorf("ayanamsa = %g, implausible for 1984", out.Chart.AyanamsaValue)
	}
}

func TestChartOperationHouseSystem(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Chart(context.Background(), database, cfg, ChartInput{
		BirthInput:  BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		HouseSystem: "whole_sign",
	})
	if err != nil {
		t.Fatalf("Chart error = %v", err)
	}
	// Whole-sign cusps sit on exact sign boundaries.
	for _, h := range out.Chart.Houses {
		if h.DegreesInSign != 0 {
			t.Errorf("house %d cusp at %g° into sign, want 0", h.Number, h.DegreesInSign)
		}
	}

	if _, err := Chart(context.Background(), database, cfg, ChartInput{
		BirthInput:  BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		HouseSystem: "koch",
	}); !errors.IsCode(err, errors.ErrUnknownSystem) {
		t.Errorf("koch err = %v, want unknown system", err)
	}
}

func TestDignityOperationAllPlanets(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Dignity(context.Background(), database, cfg, DignityInput{
		BirthInput: BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
	})
	if err != nil {
		t.Fatalf("Dignity error = %v", err)
	}

	if len(out.Results) != len(vedic.Planets) {
		t.Fatalf("got %d results, want %d", len(out.Results), len(vedic.Planets))
	}
	for _, r := range out.Results {
		if r.FinalScore < 0 || r.FinalScore > 100 {
			t.Errorf("%s score = %g, out of range", r.Planet, r.FinalScore)
		}
		if r.Status == "" || r.Explanation == "" {
			t.Errorf("%s missing status or explanation", r.Planet)
		}
	}
	if out.Comparison == nil {
		t.Fatal("no comparison for full evaluation")
	}
	total := out.Comparison.Distribution.Excellent + out.Comparison.Distribution.Strong +
		out.Comparison.Distribution.Moderate + out.Comparison.Distribution.Weak +
		out.Comparison.Distribution.Poor
	if total != len(vedic.Planets) {
		t.Errorf("distribution covers %d planets, want %d", total, len(vedic.Planets))
	}
}

func TestDignityOperationSinglePlanet(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Dignity(context.Background(), database, cfg, DignityInput{
		BirthInput: BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		Planet:     "mangal",
	})
	if err != nil {
		t.Fatalf("Dignity error = %v", err)
	}
	if len(out.Results) != 1 || out.Results[0].Planet != vedic.Mars {
		t.Fatalf("got %+v, want single Mars result", out.Results)
	}
	if out.Comparison != nil {
		t.Error("single-planet evaluation should have no comparison")
	}

	if _, err := Dignity(context.Background(), database, cfg, DignityInput{
		BirthInput: BirthInput{BirthTime: "1984-08-27T06:15:00+05:30"},
		Planet:     "pluto",
	}); !errors.IsCode(err, errors.ErrUnknownSystem) {
		t.Errorf("pluto err = %v, want unknown system", err)
	}
}
