package vedic

import "testing"

func TestParsePlanet(t *testing.T) {
	tests := []struct {
		in      string
		want    Planet
		wantErr bool
	}{
		{"Sun", Sun, false},
		{"sun", Sun, false},
		{" moon ", Moon, false},
		{"Mangal", Mars, false},
		{"guru", Jupiter, false},
		{"north node", Rahu, false},
		{"south node", Ketu, false},
		{"Pluto", Sun, true},
		{"", Sun, true},
	}
	for _, tt := range tests {
		got, err := ParsePlanet(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePlanet(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePlanet(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlanet(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSignLord(t *testing.T) {
	tests := []struct {
		sign ZodiacSign
		want Planet
	}{
		{Aries, Mars},
		{Taurus, Venus},
		{Gemini, Mercury},
		{Cancer, Moon},
		{Leo, Sun},
		{Virgo, Mercury},
		{Libra, Venus},
		{Scorpio, Mars},
		{Sagittarius, Jupiter},
		{Capricorn, Saturn},
		{Aquarius, Saturn},
		{Pisces, Jupiter},
	}
	for _, tt := range tests {
		got, ok := SignLord(tt.sign)
		if !ok {
			t.Errorf("SignLord(%v) ok = false", tt.sign)
			continue
		}
		if got != tt.want {
			t.Errorf("SignLord(%v) = %v, want %v", tt.sign, got, tt.want)
		}
	}

	if _, ok := SignLord(ZodiacSign(12)); ok {
		t.Error("SignLord(12) ok = true, want false")
	}
}

func TestVedicMappingDivergesFromWestern(t *testing.T) {
	// The two points where the Vedic system differs from the Western one.
	p4, err := PlanetForNumber(4)
	if err != nil || p4 != Rahu {
		t.Errorf("PlanetForNumber(4) = %v, %v; want Rahu", p4, err)
	}
	p7, err := PlanetForNumber(7)
	if err != nil || p7 != Ketu {
		t.Errorf("PlanetForNumber(7) = %v, %v; want Ketu", p7, err)
	}
}

func TestMappingBijection(t *testing.T) {
	seen := make(map[Planet]bool)
	for n := 1; n <= 9; n++ {
		p, err := PlanetForNumber(n)
		if err != nil {
			t.Fatalf("PlanetForNumber(%d) error = %v", n, err)
		}
		if seen[p] {
			t.Fatalf("planet %v mapped twice", p)
		}
		seen[p] = true

		back, err := NumberForPlanet(p)
		if err != nil {
			t.Fatalf("NumberForPlanet(%v) error = %v", p, err)
		}
		if back != n {
			t.Errorf("round trip %d -> %v -> %d", n, p, back)
		}
	}
	if len(seen) != 9 {
		t.Fatalf("mapping covers %d planets, want 9", len(seen))
	}
}

func TestPlanetForNumber_OutOfRange(t *testing.T) {
	for _, n := range []int{0, 10, -3} {
		if _, err := PlanetForNumber(n); err == nil {
			t.Errorf("PlanetForNumber(%d) expected error", n)
		}
	}
}

func TestValidateMapping(t *testing.T) {
	if err := ValidateMapping(); err != nil {
		t.Fatalf("ValidateMapping() = %v", err)
	}
}

func TestSignStart(t *testing.T) {
	if got := Libra.Start(); got != 180 {
		t.Errorf("Libra.Start() = %g, want 180", got)
	}
	if got := Aries.Start(); got != 0 {
		t.Errorf("Aries.Start() = %g, want 0", got)
	}
}
