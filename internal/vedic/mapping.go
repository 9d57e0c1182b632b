package vedic

import (
	"fmt"

	"github.com/ssanyal/graha/internal/errors"
)

// numberToPlanet is the Vedic number-to-planet mapping. It differs from the
// Western convention at exactly two points: 4 maps to Rahu and 7 to Ketu
// (never the modern outer planets).
var numberToPlanet = map[int]Planet{
	1: Sun,
	2: Moon,
	3: Jupiter,
	4: Rahu,
	5: Mercury,
	6: Venus,
	7: Ketu,
	8: Saturn,
	9: Mars,
}

// numberQualities describes the Vedic signification of each digit,
// used in report output.
var numberQualities = map[int]string{
	1: "Authority, Ego, Soul, Vitality",
	2: "Mind, Emotions, Nurturing",
	3: "Wisdom, Expansion, Optimism",
	4: "Illusion, Materialism, Innovation",
	5: "Intellect, Communication, Logic",
	6: "Luxury, Art, Desire, Relationship",
	7: "Detachment, Moksha, Intuition",
	8: "Discipline, Delay, Structure",
	9: "Energy, Aggression, Action",
}

// PlanetForNumber returns the graha ruling a numerological digit (1-9).
func PlanetForNumber(n int) (Planet, error) {
	p, ok := numberToPlanet[n]
	if !ok {
		return Sun, errors.NewValidationf("number must be between 1 and 9, got %d", n)
	}
	return p, nil
}

// NumberForPlanet returns the digit ruled by a planet.
func NumberForPlanet(p Planet) (int, error) {
	for n, q := range numberToPlanet {
		if q == p {
			return n, nil
		}
	}
	return 0, errors.NewValidationf("planet %s has no number mapping", p)
}

// NumberQualities returns the signification text for a digit (1-9).
func NumberQualities(n int) (string, error) {
	q, ok := numberQualities[n]
	if !ok {
		return "", errors.NewValidationf("number must be between 1 and 9, got %d", n)
	}
	return q, nil
}

// ValidateMapping checks the structural invariants of the Vedic mapping:
// digits 1-9 all mapped, all nine grahas used exactly once, and the two
// points where the Vedic system departs from the Western one (4=Rahu,
// 7=Ketu). Call it once at process start; it replaces an assert-on-import.
func ValidateMapping() error {
	if numberToPlanet[4] != Rahu {
		return fmt.Errorf("vedic mapping: number 4 must map to Rahu, got %s", numberToPlanet[4])
	}
	if numberToPlanet[7] != Ketu {
		return fmt.Errorf("vedic mapping: number 7 must map to Ketu, got %s", numberToPlanet[7])
	}

	seen := make(map[Planet]int, len(Planets))
	for n := 1; n <= 9; n++ {
		p, ok := numberToPlanet[n]
		if !ok {
			return fmt.Errorf("vedic mapping: number %d is unmapped", n)
		}
		seen[p]++
	}
	for _, p := range Planets {
		if seen[p] != 1 {
			return fmt.Errorf("vedic mapping: planet %s used %d times, want exactly once", p, seen[p])
		}
	}
	return nil
}
