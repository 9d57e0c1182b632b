// Package chart assembles complete sidereal birth charts: planetary
// positions with retrograde and combustion state, the ascendant, and house
// cusps. Expensive sections are computed on first access and cached for the
// life of the chart; a chart is safe for concurrent readers.
package chart

import (
	"fmt"
	"sync"
	"time"

	"github.com/ssanyal/graha/internal/ephemeris"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// combustOrb is the maximum separation from the Sun, in degrees, at which a
// planet is flagged combust.
const combustOrb = 8.0

// Position is one planet's place in the chart. Longitude is sidereal.
type Position struct {
	Planet         vedic.Planet     `json:"planet"`
	Longitude      float64          `json:"longitude"`
	Latitude       float64          `json:"latitude"`
	Distance       float64          `json:"distance"`
	LongitudeSpeed float64          `json:"longitude_speed"`
	Sign           vedic.ZodiacSign `json:"sign"`
	DegreesInSign  float64          `json:"degrees_in_sign"`
	Retrograde     bool             `json:"retrograde"`
	Combust        bool             `json:"combust"`
	SunSeparation  float64          `json:"sun_separation"`
}

// Placement returns a display form like "Libra 10.00°".
func (p *Position) Placement() string {
	return fmt.Sprintf("%s %.2f°", p.Sign, p.DegreesInSign)
}

// Ascendant is the rising degree (Lagna).
type Ascendant struct {
	Longitude     float64          `json:"longitude"`
	Sign          vedic.ZodiacSign `json:"sign"`
	DegreesInSign float64          `json:"degrees_in_sign"`
}

// House is a single house cusp.
type House struct {
	Number        int              `json:"house"`
	Longitude     float64          `json:"longitude"`
	Sign          vedic.ZodiacSign `json:"sign"`
	DegreesInSign float64          `json:"degrees_in_sign"`
}

// BirthChart holds the immutable birth data plus lazily computed sections.
type BirthChart struct {
	BirthTime      time.Time
	Latitude       float64
	Longitude      float64
	AyanamsaSystem zodiac.AyanamsaSystem
	JulianDay      float64

	provider    ephemeris.Provider
	houseSystem ephemeris.HouseSystem

	mu        sync.Mutex
	ayanamsa  *float64
	positions map[vedic.Planet]*Position
	ascendant *Ascendant
	houses    []House
}

// Option adjusts chart construction.
type Option func(*BirthChart)

// WithHouseSystem overrides the default Placidus house system.
func WithHouseSystem(hs ephemeris.HouseSystem) Option {
	return func(c *BirthChart) { c.houseSystem = hs }
}

// New validates the birth data and builds a chart bound to a provider.
// Nothing is queried until a section is first read.
func New(birthTime time.Time, lat, lon float64, system zodiac.AyanamsaSystem, provider ephemeris.Provider, opts ...Option) (*BirthChart, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, errors.NewInvalidCoordinates(lat, lon)
	}
	if provider == nil {
		provider = ephemeris.NewAnalytic()
	}
	if _, err := zodiac.Ayanamsa(0, system); err != nil {
		return nil, err
	}

	c := &BirthChart{
		BirthTime:      birthTime,
		Latitude:       lat,
		Longitude:      lon,
		AyanamsaSystem: system,
		JulianDay:      ephemeris.JulianDay(birthTime),
		provider:       provider,
		houseSystem:    ephemeris.Placidus,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ayanamsa returns the precession offset used for every conversion in this
// chart. Computed once so all sections share a single value.
func (c *BirthChart) Ayanamsa() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ayanamsaLocked()
}

func (c *BirthChart) ayanamsaLocked() (float64, error) {
	if c.ayanamsa == nil {
		v, err := zodiac.Ayanamsa(c.JulianDay, c.AyanamsaSystem)
		if err != nil {
			return 0, err
		}
		c.ayanamsa = &v
	}
	return *c.ayanamsa, nil
}

// Positions returns all nine planetary positions, computing them on first
// call. The returned map is shared; callers must not mutate it.
func (c *BirthChart) Positions() (map[vedic.Planet]*Position, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionsLocked()
}

func (c *BirthChart) positionsLocked() (map[vedic.Planet]*Position, error) {
	if c.positions != nil {
		return c.positions, nil
	}

	aya, err := c.ayanamsaLocked()
	if err != nil {
		return nil, err
	}

	// The Sun anchors combustion for everything else, so fetch it first.
	sunRaw, err := c.provider.Position(c.JulianDay, ephemeris.BodySun)
	if err != nil {
		return nil, errors.NewDataUnavailable("ephemeris", err)
	}
	sunSidereal := zodiac.ToSidereal(sunRaw.Longitude, aya)

	bodies := map[vedic.Planet]ephemeris.Body{
		vedic.Moon:    ephemeris.BodyMoon,
		vedic.Mars:    ephemeris.BodyMars,
		vedic.Mercury: ephemeris.BodyMercury,
		vedic.Jupiter: ephemeris.BodyJupiter,
		vedic.Venus:   ephemeris.BodyVenus,
		vedic.Saturn:  ephemeris.BodySaturn,
		vedic.Rahu:    ephemeris.BodyNode,
	}

	positions := make(map[vedic.Planet]*Position, len(vedic.Planets))
	positions[vedic.Sun] = buildPosition(vedic.Sun, sunRaw, aya, sunSidereal)

	for _, planet := range vedic.Planets {
		body, ok := bodies[planet]
		if !ok {
			continue
		}
		raw, err := c.provider.Position(c.JulianDay, body)
		if err != nil {
			return nil, errors.NewDataUnavailable("ephemeris", err)
		}
		positions[planet] = buildPosition(planet, raw, aya, sunSidereal)
	}

	// Ketu is derived, not queried: exactly opposite Rahu with the same
	// (retrograde) motion.
	rahu := positions[vedic.Rahu]
	ketuLon := zodiac.Normalize(rahu.Longitude + 180)
	ketuSign, ketuDeg := zodiac.SignOf(ketuLon)
	positions[vedic.Ketu] = &Position{
		Planet:         vedic.Ketu,
		Longitude:      ketuLon,
		Latitude:       -rahu.Latitude,
		Distance:       rahu.Distance,
		LongitudeSpeed: rahu.LongitudeSpeed,
		Sign:           ketuSign,
		DegreesInSign:  ketuDeg,
		Retrograde:     rahu.Retrograde,
		Combust:        zodiac.Separation(ketuLon, sunSidereal) <= combustOrb,
		SunSeparation:  zodiac.Separation(ketuLon, sunSidereal),
	}

	c.positions = positions
	return positions, nil
}

func buildPosition(planet vedic.Planet, raw ephemeris.RawPosition, ayanamsa, sunSidereal float64) *Position {
	lon := zodiac.ToSidereal(raw.Longitude, ayanamsa)
	sign, deg := zodiac.SignOf(lon)
	sep := zodiac.Separation(lon, sunSidereal)

	return &Position{
		Planet:         planet,
		Longitude:      lon,
		Latitude:       raw.Latitude,
		Distance:       raw.Distance,
		LongitudeSpeed: raw.LongitudeSpeed,
		Sign:           sign,
		DegreesInSign:  deg,
		Retrograde:     raw.LongitudeSpeed < 0,
		Combust:        planet != vedic.Sun && sep <= combustOrb,
		SunSeparation:  sep,
	}
}

// Position returns a single planet's position.
func (c *BirthChart) Position(p vedic.Planet) (*Position, error) {
	if !p.Valid() {
		return nil, errors.NewValidationf("invalid planet %d", int(p))
	}
	positions, err := c.Positions()
	if err != nil {
		return nil, err
	}
	return positions[p], nil
}

// Ascendant returns the sidereal rising degree.
func (c *BirthChart) Ascendant() (*Ascendant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.housesLocked(); err != nil {
		return nil, err
	}
	return c.ascendant, nil
}

// Houses returns the 12 sidereal house cusps.
func (c *BirthChart) Houses() ([]House, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.housesLocked(); err != nil {
		return nil, err
	}
	return c.houses, nil
}

func (c *BirthChart) housesLocked() error {
	if c.houses != nil {
		return nil
	}

	aya, err := c.ayanamsaLocked()
	if err != nil {
		return err
	}

	raw, err := c.provider.Houses(c.JulianDay, c.Latitude, c.Longitude, c.houseSystem)
	if err != nil {
		return errors.NewDataUnavailable("ephemeris", err)
	}

	ascLon := zodiac.ToSidereal(raw.Ascendant, aya)
	ascSign, ascDeg := zodiac.SignOf(ascLon)
	c.ascendant = &Ascendant{Longitude: ascLon, Sign: ascSign, DegreesInSign: ascDeg}

	houses := make([]House, 12)
	for i, cusp := range raw.Cusps {
		lon := zodiac.ToSidereal(cusp, aya)
		sign, deg := zodiac.SignOf(lon)
		houses[i] = House{Number: i + 1, Longitude: lon, Sign: sign, DegreesInSign: deg}
	}
	c.houses = houses
	return nil
}

// HouseOf returns the equal-arc house a planet occupies, counted from the
// ascendant degree in 30-degree spans.
func (c *BirthChart) HouseOf(p vedic.Planet) (int, error) {
	pos, err := c.Position(p)
	if err != nil {
		return 0, err
	}
	asc, err := c.Ascendant()
	if err != nil {
		return 0, err
	}
	arc := zodiac.Normalize(pos.Longitude - asc.Longitude)
	return int(arc/30) + 1, nil
}

// PlanetsInSign lists the planets placed in a sign, in canonical order.
func (c *BirthChart) PlanetsInSign(sign vedic.ZodiacSign) ([]vedic.Planet, error) {
	positions, err := c.Positions()
	if err != nil {
		return nil, err
	}
	var out []vedic.Planet
	for _, p := range vedic.Planets {
		if positions[p].Sign == sign {
			out = append(out, p)
		}
	}
	return out, nil
}

// Summary is the serializable form of a fully computed chart.
type Summary struct {
	BirthTime      string                   `json:"birth_datetime"`
	Latitude       float64                  `json:"latitude"`
	Longitude      float64                  `json:"longitude"`
	AyanamsaSystem string                   `json:"ayanamsa_system"`
	AyanamsaValue  float64                  `json:"ayanamsa_value"`
	JulianDay      float64                  `json:"julian_day"`
	Ascendant      *Ascendant               `json:"ascendant"`
	Positions      map[string]*Position     `json:"planets"`
	Houses         []House                  `json:"houses"`
}

// Summarize forces every lazy section and returns the complete chart.
func (c *BirthChart) Summarize() (*Summary, error) {
	aya, err := c.Ayanamsa()
	if err != nil {
		return nil, err
	}
	positions, err := c.Positions()
	if err != nil {
		return nil, err
	}
	asc, err := c.Ascendant()
	if err != nil {
		return nil, err
	}
	houses, err := c.Houses()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Position, len(positions))
	for p, pos := range positions {
		byName[p.String()] = pos
	}

	return &Summary{
		BirthTime:      c.BirthTime.Format(time.RFC3339),
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		AyanamsaSystem: string(c.AyanamsaSystem),
		AyanamsaValue:  aya,
		JulianDay:      c.JulianDay,
		Ascendant:      asc,
		Positions:      byName,
		Houses:         houses,
	}, nil
}
