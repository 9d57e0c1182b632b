package ephemeris

import (
	"math"
	"time"
)

// JulianDay converts an instant to a Julian Day number. The input is taken
// in UTC; callers holding zone-local birth times must attach the zone before
// calling so the conversion lands on the right instant.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year := u.Year()
	month := int(u.Month())
	day := float64(u.Day())

	hour := float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3.6e12

	if month <= 2 {
		year--
		month += 12
	}

	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		day + b - 1524.5 + hour/24

	return jd
}

// FromJulianDay converts a Julian Day back to a UTC instant. Inverse of
// JulianDay to sub-second precision for the Gregorian era.
func FromJulianDay(jd float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFrac := b - d - math.Floor(30.6001*e) + f
	day := math.Floor(dayFrac)

	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}

	hours := (dayFrac - day) * 24
	hour := math.Floor(hours)
	minutes := (hours - hour) * 60
	minute := math.Floor(minutes)
	seconds := (minutes - minute) * 60

	secWhole := math.Floor(seconds)
	nanos := math.Round((seconds - secWhole) * 1e9)

	return time.Date(int(year), time.Month(month), int(day),
		int(hour), int(minute), int(secWhole), int(nanos), time.UTC)
}
