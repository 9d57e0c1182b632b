package zodiac

import (
	"math"
	"testing"

	"github.com/ssanyal/graha/internal/vedic"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
		{-360, 0},
		{359.999, 359.999},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestSiderealRoundTrip(t *testing.T) {
	for _, ayanamsa := range []float64{0, 23.85, 24.1, -5, 359} {
		for lon := 0.0; lon < 360; lon += 7.3 {
			sid := ToSidereal(lon, ayanamsa)
			back := ToTropical(sid, ayanamsa)
			if Separation(back, lon) > 1e-5 {
				t.Fatalf("round trip lon=%g ayanamsa=%g: got %g", lon, ayanamsa, back)
			}
		}
	}
}

func TestSignOf(t *testing.T) {
	tests := []struct {
		lon      float64
		wantSign vedic.ZodiacSign
		wantDeg  float64
	}{
		{0.0, vedic.Aries, 0},
		{29.999, vedic.Aries, 29.999},
		{30.0, vedic.Taurus, 0},
		{190.0, vedic.Libra, 10},
		{359.999, vedic.Pisces, 29.999},
		{360.0, vedic.Aries, 0},
		{-1.0, vedic.Pisces, 29},
	}
	for _, tt := range tests {
		sign, deg := SignOf(tt.lon)
		if sign != tt.wantSign {
			t.Errorf("SignOf(%g) sign = %v, want %v", tt.lon, sign, tt.wantSign)
		}
		if math.Abs(deg-tt.wantDeg) > 1e-9 {
			t.Errorf("SignOf(%g) deg = %g, want %g", tt.lon, deg, tt.wantDeg)
		}
	}
}

func TestSeparation(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 20, 10},
		{350, 10, 20},
		{0, 180, 180},
		{0, 181, 179},
	}
	for _, tt := range tests {
		if got := Separation(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Separation(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseAyanamsa(t *testing.T) {
	if _, err := ParseAyanamsa("Lahiri"); err != nil {
		t.Errorf("ParseAyanamsa(Lahiri) error = %v", err)
	}
	if sys, err := ParseAyanamsa(" RAMAN "); err != nil || sys != Raman {
		t.Errorf("ParseAyanamsa(RAMAN) = %v, %v", sys, err)
	}
	if _, err := ParseAyanamsa("tropical"); err == nil {
		t.Error("ParseAyanamsa(tropical) expected error")
	}
}

func TestAyanamsaLahiriProgresses(t *testing.T) {
	// At J2000 the Lahiri value is the base; a century later it has
	// advanced by about 1.4 degrees.
	at2000, err := Ayanamsa(epochJ2000, Lahiri)
	if err != nil {
		t.Fatalf("Ayanamsa error = %v", err)
	}
	if math.Abs(at2000-23.437083) > 1e-9 {
		t.Errorf("Lahiri at J2000 = %g, want 23.437083", at2000)
	}

	at2100, _ := Ayanamsa(epochJ2000+100*365.25, Lahiri)
	if delta := at2100 - at2000; math.Abs(delta-1.3955235) > 1e-6 {
		t.Errorf("Lahiri century drift = %g, want ~1.3955", delta)
	}
}

func TestAyanamsaStaticSystems(t *testing.T) {
	// Static systems ignore time entirely.
	a, err := Ayanamsa(epochJ2000, Fagan)
	if err != nil {
		t.Fatalf("Ayanamsa(Fagan) error = %v", err)
	}
	b, _ := Ayanamsa(epochJ2000+50000, Fagan)
	if a != b {
		t.Errorf("Fagan varies with time: %g vs %g", a, b)
	}
	if a != 24.1 {
		t.Errorf("Fagan = %g, want 24.1", a)
	}

	if _, err := Ayanamsa(epochJ2000, AyanamsaSystem("nope")); err == nil {
		t.Error("Ayanamsa(nope) expected error")
	}
}
