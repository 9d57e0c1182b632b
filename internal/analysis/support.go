// Package analysis correlates the numerology planets with their
// astrological dignity: per-planet support levels, the harmony between the
// two core numbers, and temporal score series over date ranges.
package analysis

import (
	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/dignity"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
)

// Support level thresholds. Bands are inclusive at their lower edge.
const (
	excellentSupportMin = 75.0
	goodSupportMin      = 50.0
	weakSupportMin      = 25.0
)

// PlanetSupport ties one core number's ruling planet to its dignity in the
// chart.
type PlanetSupport struct {
	Number       int             `json:"number"`
	Planet       vedic.Planet    `json:"planet"`
	Score        float64         `json:"score"`
	SupportLevel string          `json:"support_level"`
	DignityType  dignity.Type    `json:"dignity_type"`
	Details      *dignity.Result `json:"details"`
}

// SupportAnalysis is the full support/contradiction picture for a birth.
type SupportAnalysis struct {
	Mulanka      PlanetSupport `json:"mulanka"`
	Bhagyanka    PlanetSupport `json:"bhagyanka"`
	AverageScore float64       `json:"average_score"`
	HarmonyLevel string        `json:"harmony_level"`
}

// SupportLevel maps a dignity score to its support band.
func SupportLevel(score float64) string {
	switch {
	case score >= excellentSupportMin:
		return "Excellent Support"
	case score >= goodSupportMin:
		return "Good Support"
	case score >= weakSupportMin:
		return "Weak Support"
	}
	return "Contradiction"
}

// HarmonyLevel classifies how the two core scores sit together: both the
// average and the spread matter, and every comparison is inclusive.
func HarmonyLevel(mulankaScore, bhagyankaScore float64) string {
	avg := (mulankaScore + bhagyankaScore) / 2
	diff := mulankaScore - bhagyankaScore
	if diff < 0 {
		diff = -diff
	}

	switch {
	case avg >= 75 && diff <= 20:
		return "Excellent Harmony"
	case avg >= 60 && diff <= 30:
		return "Good Harmony"
	case avg >= 40:
		return "Moderate Harmony"
	}
	return "Significant Tension"
}

// AnalyzeSupport scores the Mulanka and Bhagyanka planets in the chart and
// summarizes their combined harmony.
func AnalyzeSupport(numbers *numerology.CoreNumbers, c *chart.BirthChart) (*SupportAnalysis, error) {
	mulanka, err := supportFor(numbers.Mulanka, numbers.MulankaPlanet, c)
	if err != nil {
		return nil, err
	}
	bhagyanka, err := supportFor(numbers.Bhagyanka, numbers.BhagyankaPlanet, c)
	if err != nil {
		return nil, err
	}

	return &SupportAnalysis{
		Mulanka:      *mulanka,
		Bhagyanka:    *bhagyanka,
		AverageScore: (mulanka.Score + bhagyanka.Score) / 2,
		HarmonyLevel: HarmonyLevel(mulanka.Score, bhagyanka.Score),
	}, nil
}

func supportFor(number int, planet vedic.Planet, c *chart.BirthChart) (*PlanetSupport, error) {
	pos, err := c.Position(planet)
	if err != nil {
		return nil, err
	}
	result := dignity.Score(planet, pos.Longitude, dignity.Modifiers{
		Retrograde:    pos.Retrograde,
		Combust:       pos.Combust,
		SunSeparation: pos.SunSeparation,
	})
	return &PlanetSupport{
		Number:       number,
		Planet:       planet,
		Score:        result.FinalScore,
		SupportLevel: SupportLevel(result.FinalScore),
		DignityType:  result.DignityType,
		Details:      result,
	}, nil
}
