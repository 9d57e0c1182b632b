// Package vedic defines the fixed vocabulary of the engine: the nine grahas,
// the twelve signs, sign lordships, and the Vedic number-to-planet mapping.
package vedic

import (
	"strings"

	"github.com/ssanyal/graha/internal/errors"
)

// Planet is one of the nine Vedic grahas. Rahu and Ketu are the lunar nodes,
// always exactly 180 degrees apart.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// Planets lists all nine grahas in traditional order.
var Planets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var planetNames = [...]string{
	Sun:     "Sun",
	Moon:    "Moon",
	Mars:    "Mars",
	Mercury: "Mercury",
	Jupiter: "Jupiter",
	Venus:   "Venus",
	Saturn:  "Saturn",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

// Sanskrit names, used in report output.
var planetSanskrit = [...]string{
	Sun:     "Surya",
	Moon:    "Chandra",
	Mars:    "Mangal",
	Mercury: "Budha",
	Jupiter: "Guru",
	Venus:   "Shukra",
	Saturn:  "Shani",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

var planetSymbols = [...]string{
	Sun:     "☉",
	Moon:    "☽",
	Mars:    "♂",
	Mercury: "☿",
	Jupiter: "♃",
	Venus:   "♀",
	Saturn:  "♄",
	Rahu:    "☊",
	Ketu:    "☋",
}

// String returns the English planet name.
func (p Planet) String() string {
	if p < Sun || p > Ketu {
		return "Unknown"
	}
	return planetNames[p]
}

// Sanskrit returns the Sanskrit planet name.
func (p Planet) Sanskrit() string {
	if p < Sun || p > Ketu {
		return "Unknown"
	}
	return planetSanskrit[p]
}

// Symbol returns the astrological glyph for the planet.
func (p Planet) Symbol() string {
	if p < Sun || p > Ketu {
		return "?"
	}
	return planetSymbols[p]
}

// DisplayName returns "English (Sanskrit)", e.g. "Mars (Mangal)".
func (p Planet) DisplayName() string {
	return p.String() + " (" + p.Sanskrit() + ")"
}

// Valid reports whether p is one of the nine grahas.
func (p Planet) Valid() bool {
	return p >= Sun && p <= Ketu
}

// MarshalText implements encoding.TextMarshaler so Planet serializes as its name.
func (p Planet) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Planet) UnmarshalText(text []byte) error {
	parsed, err := ParsePlanet(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var planetAliases = map[string]Planet{
	"north node": Rahu,
	"south node": Ketu,
	"true node":  Rahu,
}

// PlanetNames returns all accepted planet names, in traditional order.
func PlanetNames() []string {
	names := make([]string, 0, len(Planets))
	for _, p := range Planets {
		names = append(names, p.String())
	}
	return names
}

// ParsePlanet resolves a planet name (case-insensitive, English or Sanskrit,
// node aliases accepted). Unrecognized names return an UnknownSystem error.
func ParsePlanet(name string) (Planet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Planets {
		if key == strings.ToLower(planetNames[p]) || key == strings.ToLower(planetSanskrit[p]) {
			return p, nil
		}
	}
	if p, ok := planetAliases[key]; ok {
		return p, nil
	}
	return Sun, errors.NewUnknownSystem("planet", name, PlanetNames())
}
