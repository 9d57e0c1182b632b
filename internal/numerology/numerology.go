// Package numerology computes the core Vedic numbers: Mulanka (birth
// number) and Bhagyanka (destiny number), with the traditional sunrise day
// correction. The day of birth runs sunrise to sunrise, so a birth before
// sunrise counts as the previous calendar day for the Mulanka only; the
// Bhagyanka always uses the calendar date as recorded.
package numerology

import (
	"time"

	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/vedic"
)

// ReduceToSingleDigit collapses a number by repeated digit summation until a
// single digit remains. Zero reduces to 9; negative input is rejected.
func ReduceToSingleDigit(n int) (int, error) {
	if n < 0 {
		return 0, errors.NewValidationf("number must be non-negative, got %d", n)
	}
	if n == 0 {
		return 9, nil
	}
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n, nil
}

// Mulanka reduces a day-of-month to the birth number.
func Mulanka(day int) (int, error) {
	if day < 1 || day > 31 {
		return 0, errors.NewValidationf("day must be 1-31, got %d", day)
	}
	return ReduceToSingleDigit(day)
}

// Bhagyanka reduces the full date sum (day + month + year) to the destiny
// number.
func Bhagyanka(year, month, day int) (int, error) {
	if month < 1 || month > 12 {
		return 0, errors.NewValidationf("month must be 1-12, got %d", month)
	}
	if day < 1 || day > 31 {
		return 0, errors.NewValidationf("day must be 1-31, got %d", day)
	}
	if year < 1 {
		return 0, errors.NewValidationf("year must be positive, got %d", year)
	}
	return ReduceToSingleDigit(day + month + year)
}

// CoreNumbers is a complete numerology reading for one birth.
type CoreNumbers struct {
	Mulanka              int          `json:"mulanka"`
	MulankaPlanet        vedic.Planet `json:"mulanka_planet"`
	Bhagyanka            int          `json:"bhagyanka"`
	BhagyankaPlanet      vedic.Planet `json:"bhagyanka_planet"`
	EffectiveDate        time.Time    `json:"effective_date"`
	SunriseTime          *time.Time   `json:"sunrise_time,omitempty"`
	DayCorrectionApplied bool         `json:"day_correction_applied"`
	Relationship         string       `json:"relationship"`
}

// Compute derives both core numbers for a birth moment. When applyCorrection
// is set, the birth day is shifted to the previous calendar day if the birth
// fell before local sunrise; a failed sunrise calculation degrades silently
// to the uncorrected date.
func Compute(birth time.Time, lat, lon float64, applyCorrection bool) (*CoreNumbers, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, errors.NewInvalidCoordinates(lat, lon)
	}

	effective := birth
	corrected := false
	var sunriseAt *time.Time

	if applyCorrection {
		if sr, ok := SunriseAt(birth, lat, lon); ok {
			local := sr.In(birth.Location())
			sunriseAt = &local
			if beforeTimeOfDay(birth, local) {
				effective = birth.AddDate(0, 0, -1)
				corrected = true
			}
		}
	}

	mulanka, err := Mulanka(effective.Day())
	if err != nil {
		return nil, err
	}
	mulankaPlanet, err := vedic.PlanetForNumber(mulanka)
	if err != nil {
		return nil, err
	}

	bhagyanka, err := Bhagyanka(birth.Year(), int(birth.Month()), birth.Day())
	if err != nil {
		return nil, err
	}
	bhagyankaPlanet, err := vedic.PlanetForNumber(bhagyanka)
	if err != nil {
		return nil, err
	}

	rel, err := Relationship(mulanka, bhagyanka)
	if err != nil {
		return nil, err
	}

	return &CoreNumbers{
		Mulanka:              mulanka,
		MulankaPlanet:        mulankaPlanet,
		Bhagyanka:            bhagyanka,
		BhagyankaPlanet:      bhagyankaPlanet,
		EffectiveDate:        effective,
		SunriseTime:          sunriseAt,
		DayCorrectionApplied: corrected,
		Relationship:         rel,
	}, nil
}

// beforeTimeOfDay compares clock times only, ignoring the date, matching the
// traditional rule that only the time of day decides the Vedic day.
func beforeTimeOfDay(a, b time.Time) bool {
	ah, am, as := a.Clock()
	bh, bm, bs := b.Clock()
	if ah != bh {
		return ah < bh
	}
	if am != bm {
		return am < bm
	}
	return as < bs
}

// Relationship describes how the Mulanka and Bhagyanka interact.
func Relationship(mulanka, bhagyanka int) (string, error) {
	if mulanka < 1 || mulanka > 9 {
		return "", errors.NewValidationf("mulanka must be 1-9, got %d", mulanka)
	}
	if bhagyanka < 1 || bhagyanka > 9 {
		return "", errors.NewValidationf("bhagyanka must be 1-9, got %d", bhagyanka)
	}

	switch {
	case mulanka == bhagyanka:
		return "Harmonic Unity: Personality and destiny are aligned - strong potential for self-actualization", nil
	case mulanka+bhagyanka == 10:
		return "Complementary Balance: Personality and destiny complement each other perfectly", nil
	}

	diff := mulanka - bhagyanka
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 2:
		return "Close Harmony: Personality and destiny work closely together", nil
	case diff >= 6:
		return "Dynamic Tension: Personality and destiny present significant challenges", nil
	}
	return "Balanced Growth: Personality and destiny offer opportunities for development", nil
}
