package analysis

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/ephemeris"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// stubProvider returns fixed tropical positions, optionally failing for a
// window of Julian Days so a single day of a range can be made to error.
type stubProvider struct {
	failFrom, failTo float64
}

func (s *stubProvider) Position(jd float64, body ephemeris.Body) (ephemeris.RawPosition, error) {
	if s.failFrom != 0 && jd >= s.failFrom && jd <= s.failTo {
		return ephemeris.RawPosition{}, fmt.Errorf("ephemeris outage")
	}
	base := map[ephemeris.Body]ephemeris.RawPosition{
		ephemeris.BodySun:     {Longitude: 34.1, LongitudeSpeed: 1},      // sidereal 10 Aries under Fagan
		ephemeris.BodyMoon:    {Longitude: 124.1, LongitudeSpeed: 13},    // sidereal 10 Cancer
		ephemeris.BodyMars:    {Longitude: 124.1, LongitudeSpeed: -0.2},  // sidereal 10 Cancer
		ephemeris.BodyMercury: {Longitude: 99.1, LongitudeSpeed: 1.2},    // sidereal 15 Gemini
		ephemeris.BodyJupiter: {Longitude: 269.1, LongitudeSpeed: 0.1},   // sidereal 5 Sagittarius
		ephemeris.BodyVenus:   {Longitude: 204.1, LongitudeSpeed: 1.1},   // sidereal 0 Libra
		ephemeris.BodySaturn:  {Longitude: 324.1, LongitudeSpeed: 0.05},  // sidereal 10 Aquarius
		ephemeris.BodyNode:    {Longitude: 84.1, LongitudeSpeed: -0.053}, // sidereal 0 Gemini
	}
	return base[body], nil
}

func (s *stubProvider) Houses(jd, lat, lon float64, system ephemeris.HouseSystem) (ephemeris.HouseCusps, error) {
	var h ephemeris.HouseCusps
	h.Ascendant = 124.1
	for i := range h.Cusps {
		h.Cusps[i] = math.Mod(h.Ascendant+float64(i)*30, 360)
	}
	return h, nil
}

func TestSupportLevelBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Excellent Support"},
		{75, "Excellent Support"},
		{74.9, "Good Support"},
		{50, "Good Support"},
		{49.9, "Weak Support"},
		{25, "Weak Support"},
		{24.9, "Contradiction"},
		{0, "Contradiction"},
	}
	for _, tt := range tests {
		if got := SupportLevel(tt.score); got != tt.want {
			t.Errorf("SupportLevel(%g) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestHarmonyLevel(t *testing.T) {
	tests := []struct {
		a, b float64
		want string
	}{
		{80, 80, "Excellent Harmony"},
		{75, 75, "Excellent Harmony"},
		{85, 65, "Excellent Harmony"}, // avg 75, diff 20: both inclusive
		{86, 65, "Good Harmony"},      // diff 21 breaks excellent
		{74.9, 74.9, "Good Harmony"},  // avg just under 75 breaks excellent
		{75, 45, "Good Harmony"},      // avg 60, diff 30
		{90, 40, "Moderate Harmony"},  // avg 65 but diff 50
		{40, 40, "Moderate Harmony"},
		{39, 39, "Significant Tension"},
		{5, 5, "Significant Tension"},
	}
	for _, tt := range tests {
		if got := HarmonyLevel(tt.a, tt.b); got != tt.want {
			t.Errorf("HarmonyLevel(%g, %g) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAnalyzeSupport(t *testing.T) {
	// 1984-08-27 gives Mulanka 9 (Mars) and Bhagyanka 3 (Jupiter). Under
	// the stub, Mars sits retrograde at 10 Cancer (enemy sign 25, +15
	// retrograde = 40) and Jupiter at 5 Sagittarius (moolatrikona 90).
	birth := time.Date(1984, 8, 27, 14, 0, 0, 0, time.UTC)
	numbers, err := numerology.Compute(birth, 28.6139, 77.1025, false)
	if err != nil {
		t.Fatalf("Compute error = %v", err)
	}

	c, err := chart.New(birth, 28.6139, 77.1025, zodiac.Fagan, &stubProvider{})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	a, err := AnalyzeSupport(numbers, c)
	if err != nil {
		t.Fatalf("AnalyzeSupport error = %v", err)
	}

	if a.Mulanka.Planet != vedic.Mars || a.Bhagyanka.Planet != vedic.Jupiter {
		t.Fatalf("planets = %v/%v, want Mars/Jupiter", a.Mulanka.Planet, a.Bhagyanka.Planet)
	}
	if a.Mulanka.Score != 40 {
		t.Errorf("Mulanka score = %g, want 40", a.Mulanka.Score)
	}
	if a.Mulanka.SupportLevel != "Weak Support" {
		t.Errorf("Mulanka level = %q, want Weak Support", a.Mulanka.SupportLevel)
	}
	if a.Bhagyanka.Score != 90 {
		t.Errorf("Bhagyanka score = %g, want 90", a.Bhagyanka.Score)
	}
	if a.Bhagyanka.SupportLevel != "Excellent Support" {
		t.Errorf("Bhagyanka level = %q, want Excellent Support", a.Bhagyanka.SupportLevel)
	}
	if a.AverageScore != 65 {
		t.Errorf("average = %g, want 65", a.AverageScore)
	}
	// avg 65, diff 50: moderate.
	if a.HarmonyLevel != "Moderate Harmony" {
		t.Errorf("harmony = %q, want Moderate Harmony", a.HarmonyLevel)
	}
}

func temporalRequest(start, end time.Time, p ephemeris.Provider) TemporalRequest {
	return TemporalRequest{
		Start:     start,
		End:       end,
		Latitude:  28.6139,
		Longitude: 77.1025,
		Ayanamsa:  zodiac.Fagan,
		Provider:  p,
	}
}

func TestGenerateTemporalInclusiveRange(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)

	series, err := GenerateTemporal(context.Background(), temporalRequest(start, end, &stubProvider{}))
	if err != nil {
		t.Fatalf("GenerateTemporal error = %v", err)
	}
	if len(series.Days) != 5 {
		t.Fatalf("got %d days, want 5 (inclusive ends)", len(series.Days))
	}
	if len(series.Gaps) != 0 {
		t.Errorf("unexpected gaps: %v", series.Gaps)
	}

	// Date order is preserved regardless of worker completion order.
	for i, d := range series.Days {
		want := start.AddDate(0, 0, i)
		if !d.Date.Equal(want) {
			t.Errorf("day %d = %v, want %v", i, d.Date, want)
		}
	}
}

func TestGenerateTemporalSingleDay(t *testing.T) {
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	series, err := GenerateTemporal(context.Background(), temporalRequest(day, day, &stubProvider{}))
	if err != nil {
		t.Fatalf("GenerateTemporal error = %v", err)
	}
	if len(series.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(series.Days))
	}

	// March 1st: Mulanka 1, Sun. The numerology trace is discrete: the
	// active planet at 100, the other eight at 0.
	d := series.Days[0]
	if d.Mulanka != 1 || d.MulankaPlanet != vedic.Sun {
		t.Errorf("mulanka = %d %v, want 1 Sun", d.Mulanka, d.MulankaPlanet)
	}
	if d.NumerologyScores[vedic.Sun] != 100 {
		t.Errorf("Sun numerology score = %g, want 100", d.NumerologyScores[vedic.Sun])
	}
	var zeros int
	for _, p := range vedic.Planets {
		if d.NumerologyScores[p] == 0 {
			zeros++
		}
	}
	if zeros != 8 {
		t.Errorf("%d planets at zero, want 8", zeros)
	}

	// Sun fixed at sidereal 10 Aries scores 100 in the dignity system too.
	if d.DignityScores[vedic.Sun] != 100 {
		t.Errorf("Sun dignity = %g, want 100", d.DignityScores[vedic.Sun])
	}
}

func TestGenerateTemporalRejectsReversedRange(t *testing.T) {
	start := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := GenerateTemporal(context.Background(), temporalRequest(start, end, &stubProvider{}))
	if !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestGenerateTemporalGapOnFailure(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)

	// Fail the ephemeris around noon of March 3rd only.
	noon3 := ephemeris.JulianDay(time.Date(2021, 3, 3, 12, 0, 0, 0, time.UTC))
	p := &stubProvider{failFrom: noon3 - 0.01, failTo: noon3 + 0.01}

	series, err := GenerateTemporal(context.Background(), temporalRequest(start, end, p))
	if err != nil {
		t.Fatalf("GenerateTemporal error = %v", err)
	}
	if len(series.Days) != 4 {
		t.Fatalf("got %d days, want 4", len(series.Days))
	}
	if len(series.Gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(series.Gaps))
	}
	if series.Gaps[0].Day() != 3 {
		t.Errorf("gap on day %d, want 3", series.Gaps[0].Day())
	}
	// The surviving days remain ordered across the gap.
	if series.Days[1].Date.Day() != 2 || series.Days[2].Date.Day() != 4 {
		t.Errorf("days misordered around gap: %v, %v", series.Days[1].Date, series.Days[2].Date)
	}
}

func TestGenerateTemporalStats(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 3, 0, 0, 0, 0, time.UTC)
	series, err := GenerateTemporal(context.Background(), temporalRequest(start, end, &stubProvider{}))
	if err != nil {
		t.Fatalf("GenerateTemporal error = %v", err)
	}

	// Positions are frozen in the stub, so mean == min == max.
	s, ok := series.Stats[vedic.Sun]
	if !ok {
		t.Fatal("no Sun stats")
	}
	if s.Mean != 100 || s.Min != 100 || s.Max != 100 {
		t.Errorf("Sun stats = %+v, want all 100", s)
	}
}

func TestGenerateTemporalCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	series, err := GenerateTemporal(ctx, temporalRequest(start, end, &stubProvider{}))
	if err == nil {
		t.Fatal("expected context error")
	}
	if series == nil {
		t.Fatal("partial series should still be returned")
	}
	if len(series.Days) == 365 {
		t.Error("cancelled run completed every day")
	}
}
