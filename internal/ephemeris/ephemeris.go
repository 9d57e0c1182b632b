// Package ephemeris defines the astronomical data source consumed by the
// chart assembler, plus a built-in deterministic analytic provider. The
// engine treats the provider as the sole source of ground-truth positions;
// all values it returns are tropical and are converted to sidereal upstream.
package ephemeris

import (
	"strings"

	"github.com/ssanyal/graha/internal/errors"
)

// Body identifies an ephemeris query target. The lunar node is a single
// query; Rahu is taken from it directly and Ketu synthesized at +180°.
type Body int

const (
	BodySun Body = iota
	BodyMoon
	BodyMars
	BodyMercury
	BodyJupiter
	BodyVenus
	BodySaturn
	BodyNode
)

var bodyNames = [...]string{
	BodySun:     "Sun",
	BodyMoon:    "Moon",
	BodyMars:    "Mars",
	BodyMercury: "Mercury",
	BodyJupiter: "Jupiter",
	BodyVenus:   "Venus",
	BodySaturn:  "Saturn",
	BodyNode:    "Node",
}

// String returns the body name.
func (b Body) String() string {
	if b < BodySun || b > BodyNode {
		return "Unknown"
	}
	return bodyNames[b]
}

// RawPosition is a single tropical position sample.
type RawPosition struct {
	Longitude      float64 // tropical ecliptic longitude, degrees [0,360)
	Latitude       float64 // ecliptic latitude, degrees
	Distance       float64 // geocentric distance, AU
	LongitudeSpeed float64 // degrees per day; negative means retrograde
}

// HouseSystem selects the house computation method.
type HouseSystem byte

const (
	Placidus  HouseSystem = 'P'
	Equal     HouseSystem = 'E'
	WholeSign HouseSystem = 'W'
)

// ParseHouseSystem resolves a house system name.
func ParseHouseSystem(name string) (HouseSystem, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "placidus", "p", "":
		return Placidus, nil
	case "equal", "e":
		return Equal, nil
	case "whole_sign", "whole", "w":
		return WholeSign, nil
	}
	return Placidus, errors.NewUnknownSystem("house system", name, []string{"placidus", "equal", "whole_sign"})
}

// HouseCusps is the result of a single house-system query.
type HouseCusps struct {
	Cusps     [12]float64 // tropical cusp longitudes, house 1 first
	Ascendant float64     // tropical ascendant longitude
}

// Provider supplies raw astronomical data. Implementations may block on I/O;
// the engine performs no retries and surfaces failures to the caller.
type Provider interface {
	// Position returns the tropical position of a body at a Julian Day.
	Position(jd float64, body Body) (RawPosition, error)

	// Houses returns the 12 house cusps and ascendant for a moment and place.
	Houses(jd, lat, lon float64, system HouseSystem) (HouseCusps, error)
}
