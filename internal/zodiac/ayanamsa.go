package zodiac

import (
	"strings"

	"github.com/ssanyal/graha/internal/errors"
)

// AyanamsaSystem identifies a sidereal offset system.
type AyanamsaSystem string

const (
	Lahiri       AyanamsaSystem = "lahiri"       // Chitra Paksha, standard for Vedic astrology
	Raman        AyanamsaSystem = "raman"        // Krishnamurti
	Krishnamurti AyanamsaSystem = "krishnamurti" // same as Raman
	Yukteshwar   AyanamsaSystem = "yukteshwar"
	Fagan        AyanamsaSystem = "fagan" // Fagan-Bradley
	DeLuce       AyanamsaSystem = "deluce"
	DjwhalKhul   AyanamsaSystem = "djwhal_khul"
)

// Lahiri analytic approximation: linear precession from the J2000 base
// value. This is an approximation, not a tie to any external constant table.
const (
	lahiriBaseJ2000  = 23.437083    // 23° 26' 13.5" at J2000
	lahiriAnnualRate = 0.013955235  // 50.2388475 arcsec/year in degrees
	epochJ2000       = 2451545.0    // Julian Day of J2000.0
	daysPerYear      = 365.25
)

// staticOffsets holds fixed reference degree values for the non-analytic
// systems. These are static approximations requiring periodic update;
// callers needing precision should prefer Lahiri.
var staticOffsets = map[AyanamsaSystem]float64{
	Raman:        22.5,
	Krishnamurti: 22.5,
	Yukteshwar:   22.0,
	Fagan:        24.1,
	DeLuce:       25.2,
	DjwhalKhul:   23.8,
}

// Systems lists all recognized ayanamsa system names.
func Systems() []string {
	return []string{
		string(Lahiri), string(Raman), string(Krishnamurti),
		string(Yukteshwar), string(Fagan), string(DeLuce), string(DjwhalKhul),
	}
}

// ParseAyanamsa resolves a system name (case-insensitive). Unrecognized
// names return an UnknownSystem error.
func ParseAyanamsa(name string) (AyanamsaSystem, error) {
	key := AyanamsaSystem(strings.ToLower(strings.TrimSpace(name)))
	if key == Lahiri {
		return Lahiri, nil
	}
	if _, ok := staticOffsets[key]; ok {
		return key, nil
	}
	return Lahiri, errors.NewUnknownSystem("ayanamsa system", name, Systems())
}

// Ayanamsa returns the precession offset in degrees for a Julian Day under
// the given system. Lahiri is computed analytically; other systems return
// their static reference value regardless of time.
func Ayanamsa(jd float64, system AyanamsaSystem) (float64, error) {
	if system == Lahiri {
		return lahiriAyanamsa(jd), nil
	}
	if off, ok := staticOffsets[system]; ok {
		return off, nil
	}
	return 0, errors.NewUnknownSystem("ayanamsa system", string(system), Systems())
}

// lahiriAyanamsa applies the linear Lahiri approximation.
func lahiriAyanamsa(jd float64) float64 {
	yearsSinceJ2000 := (jd - epochJ2000) / daysPerYear
	return lahiriBaseJ2000 + yearsSinceJ2000*lahiriAnnualRate
}
