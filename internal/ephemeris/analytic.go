package ephemeris

import (
	"math"

	"github.com/ssanyal/graha/internal/errors"
)

// Analytic is the built-in provider. It computes positions from closed-form
// planetary theory: Keplerian mean elements for Mercury through Saturn, a
// truncated ELP-style series for the Moon, and the mean lunar node. Accuracy
// is on the order of arcminutes over 1800-2050, well inside what sign-level
// dignity analysis needs. It performs no I/O and never blocks.
type Analytic struct{}

// NewAnalytic returns the built-in analytic provider.
func NewAnalytic() *Analytic {
	return &Analytic{}
}

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	// step for central-difference longitude speeds, in days
	speedStep = 0.5
)

// Position implements Provider. Longitude speed is obtained by central
// difference over a half-day window, which keeps retrograde sign changes
// sharp enough for station detection at the precision this theory offers.
func (a *Analytic) Position(jd float64, body Body) (RawPosition, error) {
	lon, lat, dist, err := a.compute(jd, body)
	if err != nil {
		return RawPosition{}, err
	}

	before, _, _, err := a.compute(jd-speedStep, body)
	if err != nil {
		return RawPosition{}, err
	}
	after, _, _, err := a.compute(jd+speedStep, body)
	if err != nil {
		return RawPosition{}, err
	}

	delta := math.Mod(after-before, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}

	return RawPosition{
		Longitude:      normalize(lon),
		Latitude:       lat,
		Distance:       dist,
		LongitudeSpeed: delta / (2 * speedStep),
	}, nil
}

func (a *Analytic) compute(jd float64, body Body) (lon, lat, dist float64, err error) {
	t := (jd - 2451545.0) / 36525 // Julian centuries since J2000

	switch body {
	case BodySun:
		lon, dist = solarPosition(t)
		return lon, 0, dist, nil
	case BodyMoon:
		lon, lat, dist = lunarPosition(t)
		return lon, lat, dist, nil
	case BodyNode:
		lon = meanLunarNode(t)
		return lon, 0, 0.00257, nil
	case BodyMercury, BodyVenus, BodyMars, BodyJupiter, BodySaturn:
		lon, lat, dist = planetPosition(t, body)
		return lon, lat, dist, nil
	}
	return 0, 0, 0, errors.NewValidationf("unknown ephemeris body %d", int(body))
}

// Houses implements Provider. The ascendant and midheaven come from the
// exact rigid-sphere formulas; Placidus intermediate cusps use quadrant
// trisection, which matches true Placidus to within a couple of degrees at
// temperate latitudes. Dignity analysis reads sign placement only, so the
// approximation does not leak into scores.
func (a *Analytic) Houses(jd, lat, lon float64, system HouseSystem) (HouseCusps, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return HouseCusps{}, errors.NewInvalidCoordinates(lat, lon)
	}

	t := (jd - 2451545.0) / 36525
	eps := obliquity(t) * deg2rad
	phi := lat * deg2rad

	gmst := normalize(280.46061837 + 360.98564736629*(jd-2451545.0) +
		0.000387933*t*t - t*t*t/38710000)
	ramc := normalize(gmst+lon) * deg2rad

	mc := normalize(math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(eps)) * rad2deg)

	ascDen := -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps))
	asc := normalize(math.Atan2(math.Cos(ramc), ascDen) * rad2deg)

	var cusps [12]float64
	switch system {
	case WholeSign:
		start := math.Floor(asc/30) * 30
		for i := range cusps {
			cusps[i] = normalize(start + float64(i)*30)
		}
	case Equal:
		for i := range cusps {
			cusps[i] = normalize(asc + float64(i)*30)
		}
	case Placidus:
		ic := normalize(mc + 180)
		dsc := normalize(asc + 180)

		cusps[0] = asc
		cusps[3] = ic
		cusps[6] = dsc
		cusps[9] = mc

		q1 := arc(asc, ic)
		cusps[1] = normalize(asc + q1/3)
		cusps[2] = normalize(asc + 2*q1/3)

		q2 := arc(ic, dsc)
		cusps[4] = normalize(ic + q2/3)
		cusps[5] = normalize(ic + 2*q2/3)

		cusps[7] = normalize(cusps[1] + 180)
		cusps[8] = normalize(cusps[2] + 180)
		cusps[10] = normalize(cusps[4] + 180)
		cusps[11] = normalize(cusps[5] + 180)
	default:
		return HouseCusps{}, errors.NewUnknownSystem("house system", string(rune(system)),
			[]string{"placidus", "equal", "whole_sign"})
	}

	return HouseCusps{Cusps: cusps, Ascendant: asc}, nil
}

// arc returns the eastward arc from a to b in (0,360].
func arc(a, b float64) float64 {
	d := normalize(b - a)
	if d == 0 {
		d = 360
	}
	return d
}

func normalize(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// obliquity returns the mean obliquity of the ecliptic in degrees.
func obliquity(t float64) float64 {
	return 23.43929111 - 0.0130041667*t - 1.6389e-7*t*t + 5.0361e-7*t*t*t
}

// solarPosition returns the Sun's apparent geocentric longitude (degrees)
// and distance (AU) from the low-precision solar theory.
func solarPosition(t float64) (lon, dist float64) {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := (357.52911 + 35999.05029*t - 0.0001537*t*t) * deg2rad
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	trueLon := l0 + c
	nu := m + c*deg2rad
	dist = 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))
	return normalize(trueLon), dist
}

// lunarPosition returns the Moon's geocentric longitude and latitude in
// degrees and distance in AU, from the dominant periodic terms.
func lunarPosition(t float64) (lon, lat, dist float64) {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t // mean longitude
	d := (297.8501921 + 445267.1114034*t - 0.0018819*t*t) * deg2rad
	m := (357.5291092 + 35999.0502909*t - 0.0001536*t*t) * deg2rad
	mp := (134.9633964 + 477198.8675055*t + 0.0087414*t*t) * deg2rad
	f := (93.2720950 + 483202.0175233*t - 0.0036539*t*t) * deg2rad

	lon = lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m) -
		0.040923*math.Sin(m-mp) -
		0.034720*math.Sin(d) -
		0.030383*math.Sin(m+mp)

	lat = 5.128122*math.Sin(f) +
		0.280602*math.Sin(mp+f) +
		0.277693*math.Sin(mp-f) +
		0.173237*math.Sin(2*d-f) +
		0.055413*math.Sin(2*d-mp+f) +
		0.046271*math.Sin(2*d-mp-f)

	distKm := 385000.56 -
		20905.355*math.Cos(mp) -
		3699.111*math.Cos(2*d-mp) -
		2955.968*math.Cos(2*d) -
		569.925*math.Cos(2*mp)

	return normalize(lon), lat, distKm / 149597870.7
}

// meanLunarNode returns the mean ascending node longitude in degrees. The
// node regresses through the zodiac at about 19.3 degrees per year.
func meanLunarNode(t float64) float64 {
	return normalize(125.0445479 - 1934.1362891*t + 0.0020754*t*t)
}

// kepElements holds Keplerian mean elements at J2000 and their rates per
// Julian century, valid for 1800-2050.
type kepElements struct {
	a, aDot       float64 // semi-major axis, AU
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination, degrees
	l, lDot       float64 // mean longitude, degrees
	peri, periDot float64 // longitude of perihelion, degrees
	node, nodeDot float64 // longitude of ascending node, degrees
}

var planetElements = map[Body]kepElements{
	BodyMercury: {
		0.38709927, 0.00000037, 0.20563593, 0.00001906,
		7.00497902, -0.00594749, 252.25032350, 149472.67411175,
		77.45779628, 0.16047689, 48.33076593, -0.12534081,
	},
	BodyVenus: {
		0.72333566, 0.00000390, 0.00677672, -0.00004107,
		3.39467605, -0.00078890, 181.97909950, 58517.81538729,
		131.60246718, 0.00268329, 76.67984255, -0.27769418,
	},
	BodyMars: {
		1.52371034, 0.00001847, 0.09339410, 0.00007882,
		1.84969142, -0.00813131, -4.55343205, 19140.30268499,
		-23.94362959, 0.44441088, 49.55953891, -0.29257343,
	},
	BodyJupiter: {
		5.20288700, -0.00011607, 0.04838624, -0.00013253,
		1.30439695, -0.00183714, 34.39644051, 3034.74612775,
		14.72847983, 0.21252668, 100.47390909, 0.20469106,
	},
	BodySaturn: {
		9.53667594, -0.00125060, 0.05386179, -0.00050991,
		2.48599187, 0.00193609, 49.95424423, 1222.49362201,
		92.59887831, -0.41897216, 113.66242448, -0.28867794,
	},
}

// earthElements are the EM-barycenter elements, used both for the Earth's
// own position and to translate heliocentric planet vectors to geocentric.
var earthElements = kepElements{
	1.00000261, 0.00000562, 0.01671123, -0.00004392,
	-0.00001531, -0.01294668, 100.46457166, 35999.37244981,
	102.93768193, 0.32327364, 0, 0,
}

// heliocentric returns the J2000-ecliptic heliocentric rectangular
// coordinates of a body from its mean elements, in AU.
func heliocentric(el kepElements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	i := (el.i + el.iDot*t) * deg2rad
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	m := normalize(l-peri) * deg2rad
	omega := (peri - node) * deg2rad
	nodeRad := node * deg2rad

	// Kepler's equation, Newton iteration
	ecc := m
	for k := 0; k < 10; k++ {
		d := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= d
		if math.Abs(d) < 1e-12 {
			break
		}
	}

	xo := a * (math.Cos(ecc) - e)
	yo := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cosO, sinO := math.Cos(nodeRad), math.Sin(nodeRad)
	cosW, sinW := math.Cos(omega), math.Sin(omega)
	cosI, sinI := math.Cos(i), math.Sin(i)

	x = (cosW*cosO-sinW*sinO*cosI)*xo + (-sinW*cosO-cosW*sinO*cosI)*yo
	y = (cosW*sinO+sinW*cosO*cosI)*xo + (-sinW*sinO+cosW*cosO*cosI)*yo
	z = sinW*sinI*xo + cosW*sinI*yo
	return x, y, z
}

// planetPosition returns the geocentric ecliptic longitude and latitude in
// degrees and distance in AU for one of the classical planets.
func planetPosition(t float64, body Body) (lon, lat, dist float64) {
	px, py, pz := heliocentric(planetElements[body], t)
	ex, ey, ez := heliocentric(earthElements, t)

	gx, gy, gz := px-ex, py-ey, pz-ez
	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	lon = normalize(math.Atan2(gy, gx) * rad2deg)
	lat = math.Atan2(gz, math.Hypot(gx, gy)) * rad2deg
	return lon, lat, dist
}
