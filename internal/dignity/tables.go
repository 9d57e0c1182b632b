// Package dignity scores planetary strength on a 0-100 scale from classical
// placement rules: exaltation, debilitation, moolatrikona, own sign, and
// friendship with the sign lord, then layers positional modifiers on top.
// All longitudes taken by this package are sidereal.
package dignity

import (
	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// exaltOrb is the tolerance around the exact exaltation and debilitation
// degrees within which the full dignity applies.
const exaltOrb = 2.0

type dignityPoint struct {
	sign   vedic.ZodiacSign
	degree float64
}

// Exaltation points. The nodes carry a Taurus/Scorpio convention with the
// degree pinned at the sign start.
var exaltationTable = map[vedic.Planet]dignityPoint{
	vedic.Sun:     {vedic.Aries, 10},
	vedic.Moon:    {vedic.Taurus, 3},
	vedic.Mars:    {vedic.Capricorn, 28},
	vedic.Mercury: {vedic.Virgo, 15},
	vedic.Jupiter: {vedic.Cancer, 5},
	vedic.Venus:   {vedic.Pisces, 27},
	vedic.Saturn:  {vedic.Libra, 20},
	vedic.Rahu:    {vedic.Taurus, 0},
	vedic.Ketu:    {vedic.Scorpio, 0},
}

// Debilitation points sit opposite the exaltation points at the same degree.
var debilitationTable = map[vedic.Planet]dignityPoint{
	vedic.Sun:     {vedic.Libra, 10},
	vedic.Moon:    {vedic.Scorpio, 3},
	vedic.Mars:    {vedic.Cancer, 28},
	vedic.Mercury: {vedic.Pisces, 15},
	vedic.Jupiter: {vedic.Capricorn, 5},
	vedic.Venus:   {vedic.Virgo, 27},
	vedic.Saturn:  {vedic.Aries, 20},
	vedic.Rahu:    {vedic.Scorpio, 0},
	vedic.Ketu:    {vedic.Taurus, 0},
}

type moolaRange struct {
	startSign vedic.ZodiacSign
	startDeg  float64
	endSign   vedic.ZodiacSign
	endDeg    float64
}

// Moolatrikona ranges. The nodes have none.
var moolatrikonaTable = map[vedic.Planet]moolaRange{
	vedic.Sun:     {vedic.Leo, 0, vedic.Leo, 20},
	vedic.Moon:    {vedic.Taurus, 4, vedic.Taurus, 30},
	vedic.Mars:    {vedic.Aries, 0, vedic.Aries, 18},
	vedic.Mercury: {vedic.Virgo, 16, vedic.Virgo, 20},
	vedic.Jupiter: {vedic.Sagittarius, 0, vedic.Sagittarius, 13},
	vedic.Venus:   {vedic.Libra, 0, vedic.Libra, 10},
	vedic.Saturn:  {vedic.Aquarius, 0, vedic.Aquarius, 20},
}

// Swakshetra. The nodes rule no signs.
var ownSignsTable = map[vedic.Planet][]vedic.ZodiacSign{
	vedic.Sun:     {vedic.Leo},
	vedic.Moon:    {vedic.Cancer},
	vedic.Mars:    {vedic.Aries, vedic.Scorpio},
	vedic.Mercury: {vedic.Gemini, vedic.Virgo},
	vedic.Jupiter: {vedic.Sagittarius, vedic.Pisces},
	vedic.Venus:   {vedic.Taurus, vedic.Libra},
	vedic.Saturn:  {vedic.Capricorn, vedic.Aquarius},
}

// ExaltationPoint returns the exaltation sign and degree for a planet.
func ExaltationPoint(p vedic.Planet) (vedic.ZodiacSign, float64, bool) {
	pt, ok := exaltationTable[p]
	return pt.sign, pt.degree, ok
}

// DebilitationPoint returns the debilitation sign and degree for a planet.
func DebilitationPoint(p vedic.Planet) (vedic.ZodiacSign, float64, bool) {
	pt, ok := debilitationTable[p]
	return pt.sign, pt.degree, ok
}

// OwnSigns returns the signs a planet rules, or nil for the nodes.
func OwnSigns(p vedic.Planet) []vedic.ZodiacSign {
	return ownSignsTable[p]
}

// InExaltation reports whether a longitude falls within the exaltation orb.
func InExaltation(longitude float64, p vedic.Planet) bool {
	pt, ok := exaltationTable[p]
	if !ok {
		return false
	}
	return zodiac.Separation(longitude, pt.sign.Start()+pt.degree) <= exaltOrb
}

// InDebilitation reports whether a longitude falls within the debilitation orb.
func InDebilitation(longitude float64, p vedic.Planet) bool {
	pt, ok := debilitationTable[p]
	if !ok {
		return false
	}
	return zodiac.Separation(longitude, pt.sign.Start()+pt.degree) <= exaltOrb
}

// InMoolatrikona reports whether a longitude falls inside the planet's
// moolatrikona range. Ranges are inclusive at both ends; none of the
// classical ranges cross 0 Aries, but the wrapped branch is kept so a table
// edit cannot silently break containment.
func InMoolatrikona(longitude float64, p vedic.Planet) bool {
	r, ok := moolatrikonaTable[p]
	if !ok {
		return false
	}
	lon := zodiac.Normalize(longitude)
	start := r.startSign.Start() + r.startDeg
	end := r.endSign.Start() + r.endDeg
	if start <= end {
		return lon >= start && lon <= end
	}
	return lon >= start || lon <= end
}

// InOwnSign reports whether the longitude's sign is ruled by the planet.
func InOwnSign(longitude float64, p vedic.Planet) bool {
	sign, _ := zodiac.SignOf(longitude)
	for _, s := range ownSignsTable[p] {
		if s == sign {
			return true
		}
	}
	return false
}
