package vedic

// ZodiacSign is one of the 12 fixed 30-degree sectors of the ecliptic,
// indexed 0 (Aries) through 11 (Pisces).
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	Aries:       "Aries",
	Taurus:      "Taurus",
	Gemini:      "Gemini",
	Cancer:      "Cancer",
	Leo:         "Leo",
	Virgo:       "Virgo",
	Libra:       "Libra",
	Scorpio:     "Scorpio",
	Sagittarius: "Sagittarius",
	Capricorn:   "Capricorn",
	Aquarius:    "Aquarius",
	Pisces:      "Pisces",
}

var signSymbols = [...]string{
	Aries:       "♈",
	Taurus:      "♉",
	Gemini:      "♊",
	Cancer:      "♋",
	Leo:         "♌",
	Virgo:       "♍",
	Libra:       "♎",
	Scorpio:     "♏",
	Sagittarius: "♐",
	Capricorn:   "♑",
	Aquarius:    "♒",
	Pisces:      "♓",
}

// String returns the sign name.
func (s ZodiacSign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Symbol returns the astrological glyph for the sign.
func (s ZodiacSign) Symbol() string {
	if s < Aries || s > Pisces {
		return "?"
	}
	return signSymbols[s]
}

// Valid reports whether s is in [Aries, Pisces].
func (s ZodiacSign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// MarshalText implements encoding.TextMarshaler so ZodiacSign serializes as its name.
func (s ZodiacSign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Start returns the sign's starting ecliptic longitude in degrees.
func (s ZodiacSign) Start() float64 {
	return float64(s) * 30
}

// signLords is the traditional Vedic rulership table. Rahu and Ketu do not
// rule signs.
var signLords = [...]Planet{
	Aries:       Mars,
	Taurus:      Venus,
	Gemini:      Mercury,
	Cancer:      Moon,
	Leo:         Sun,
	Virgo:       Mercury,
	Libra:       Venus,
	Scorpio:     Mars,
	Sagittarius: Jupiter,
	Capricorn:   Saturn,
	Aquarius:    Saturn,
	Pisces:      Jupiter,
}

// SignLord returns the ruling planet of a sign. ok is false for an
// out-of-range index.
func SignLord(s ZodiacSign) (Planet, bool) {
	if !s.Valid() {
		return Sun, false
	}
	return signLords[s], true
}

// HouseNames maps house number (1-12) to its traditional name,
// used by report output.
var HouseNames = map[int]string{
	1:  "Ascendant (Lagna)",
	2:  "Wealth (Dhana)",
	3:  "Siblings (Sahaja)",
	4:  "Home (Bandhu)",
	5:  "Children (Putra)",
	6:  "Enemies (Ari)",
	7:  "Spouse (Kalatra)",
	8:  "Longevity (Ayur)",
	9:  "Fortune (Bhagya)",
	10: "Career (Karma)",
	11: "Gains (Labha)",
	12: "Spirituality (Vyaya)",
}
