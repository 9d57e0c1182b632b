// Package zodiac converts between the tropical and sidereal zodiacs and maps
// ecliptic longitudes to signs. All functions are pure; longitudes are
// normalized into [0,360) with plain modular arithmetic.
package zodiac

import (
	"math"

	"github.com/ssanyal/graha/internal/vedic"
)

// Normalize wraps a longitude into [0,360).
func Normalize(longitude float64) float64 {
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	return l
}

// ToSidereal converts a tropical longitude to sidereal by subtracting the
// ayanamsa and normalizing.
func ToSidereal(tropical, ayanamsa float64) float64 {
	return Normalize(tropical - ayanamsa)
}

// ToTropical is the inverse of ToSidereal.
func ToTropical(sidereal, ayanamsa float64) float64 {
	return Normalize(sidereal + ayanamsa)
}

// SignOf maps a longitude to its zodiac sign and the degrees within it.
// Exact at boundaries: 0.0 is Aries 0, 359.999... is Pisces 29.999...
func SignOf(longitude float64) (vedic.ZodiacSign, float64) {
	l := Normalize(longitude)
	sign := vedic.ZodiacSign(int(l/30) % 12)
	return sign, math.Mod(l, 30)
}

// Separation returns the angular separation between two longitudes in
// [0,180], accounting for wraparound.
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
