package numerology

import (
	"math"
	"time"

	astral "github.com/nathan-osman/go-sunrise"
)

// SunriseAt returns the sunrise instant (UTC) for the calendar date of t at
// the given coordinates. The precise NOAA-based calculation is tried first;
// if it yields nothing (polar day or night) a classical declination
// approximation takes over. ok is false when neither method produces a
// sunrise, in which case callers skip the day correction.
func SunriseAt(t time.Time, lat, lon float64) (time.Time, bool) {
	rise, _ := astral.SunriseSunset(lat, lon, t.Year(), t.Month(), t.Day())
	if !rise.IsZero() {
		return rise, true
	}
	return approximateSunrise(t, lat, lon)
}

// approximateSunrise is the fallback: solar declination plus a simplified
// equation of time. Good to a few minutes at temperate latitudes, which is
// enough to place a birth on the right side of sunrise in almost all cases.
func approximateSunrise(t time.Time, lat, lon float64) (time.Time, bool) {
	n := float64(t.YearDay())

	declination := 23.45 * math.Sin(rad(360*(284+n)/365))
	equationOfTime := 4 * math.Sin(rad(360*(n-81)/365)) // minutes

	// Solar noon in UTC hours.
	solarNoon := 12 - lon/15 - equationOfTime/60

	x := -math.Tan(rad(lat)) * math.Tan(rad(declination))
	if x < -1 || x > 1 {
		// Sun never rises or never sets on this date.
		return time.Time{}, false
	}
	hourAngle := math.Acos(x) * 180 / math.Pi

	riseHour := math.Mod(solarNoon-hourAngle/15+24, 24)

	h := int(riseHour)
	m := int((riseHour - float64(h)) * 60)
	s := int(((riseHour-float64(h))*60 - float64(m)) * 60)

	return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, time.UTC), true
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
