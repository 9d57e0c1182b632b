package dignity

import (
	"strings"

	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// Modifier constants. Retrograde strengthens, combustion weakens, and exact
// placement on the exaltation or debilitation degree sharpens either way.
const (
	retrogradeBonusDebilitated = 50 // Neecha Bhanga
	retrogradeBonusNormal      = 15

	combustPenaltyMajor = 40
	combustPenaltyMinor = 20

	combustOrbMajor = 3.0 // degrees from Sun

	exactExaltationBonus     = 5
	exactDebilitationPenalty = 10
	exactOrb                 = 0.5

	// debilitationCeiling is the base score at or below which a planet is
	// treated as debilitated for the Neecha Bhanga bonus.
	debilitationCeiling = 5
)

// noModifierNote is returned when modifiers left the score effectively
// unchanged.
const noModifierNote = "No significant modifiers applied."

// Modifiers is the positional state feeding the modifier chain.
type Modifiers struct {
	Retrograde    bool
	Combust       bool
	SunSeparation float64 // degrees, wraparound-corrected
}

// applyModifiers runs the modifier chain in fixed order: retrograde, then
// combustion, then exact-degree adjustments. The score is clamped into
// [0,100] after each step, so order is observable and deliberate.
func applyModifiers(base float64, p vedic.Planet, longitude float64, m Modifiers) float64 {
	score := base

	if m.Retrograde {
		if base <= debilitationCeiling {
			score += retrogradeBonusDebilitated
		} else {
			score += retrogradeBonusNormal
		}
		score = clamp(score)
	}

	if m.Combust {
		if m.SunSeparation <= combustOrbMajor {
			score -= combustPenaltyMajor
		} else {
			score -= combustPenaltyMinor
		}
		score = clamp(score)
	}

	if onExactPoint(longitude, p, exaltationTable) {
		score += exactExaltationBonus
	}
	if onExactPoint(longitude, p, debilitationTable) {
		score -= exactDebilitationPenalty
	}
	return clamp(score)
}

// explainModifiers describes the modifiers that moved the score. A change
// under a tenth of a point reads as no modifiers.
func explainModifiers(base, final float64, p vedic.Planet, longitude float64, m Modifiers) string {
	if diff := final - base; diff < 0.1 && diff > -0.1 {
		return noModifierNote
	}

	var parts []string
	if m.Retrograde {
		if base <= debilitationCeiling {
			parts = append(parts, "Neecha Bhanga: Retrograde debilitated planet gains strength")
		} else {
			parts = append(parts, "Retrograde bonus: Planet gains strength in retrograde motion")
		}
	}
	if m.Combust {
		parts = append(parts, "Combustion penalty: Planet loses strength due to proximity to Sun")
	}
	if onExactPoint(longitude, p, exaltationTable) {
		parts = append(parts, "Exact exaltation: Additional strength from precise placement")
	}
	if onExactPoint(longitude, p, debilitationTable) {
		parts = append(parts, "Exact debilitation: Additional weakness from precise placement")
	}
	if len(parts) == 0 {
		return noModifierNote
	}
	return strings.Join(parts, " | ")
}

func onExactPoint(longitude float64, p vedic.Planet, table map[vedic.Planet]dignityPoint) bool {
	pt, ok := table[p]
	if !ok {
		return false
	}
	return zodiac.Separation(longitude, pt.sign.Start()+pt.degree) <= exactOrb
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
