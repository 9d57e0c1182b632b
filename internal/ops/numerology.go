package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
)

// NumerologyInput contains parameters for the Numerology operation.
type NumerologyInput struct {
	BirthInput
	// SkipSunriseCorrection disables the Vedic day-boundary correction even
	// when the config enables it.
	SkipSunriseCorrection bool `json:"skip_sunrise_correction,omitempty"`
	// Save persists the reading and returns its ID.
	Save bool `json:"save,omitempty"`
}

// NumerologyOutput contains the result of the Numerology operation.
type NumerologyOutput struct {
	ID                 string                  `json:"id,omitempty"`
	Numbers            *numerology.CoreNumbers `json:"numbers"`
	MulankaQualities   string                  `json:"mulanka_qualities"`
	BhagyankaQualities string                  `json:"bhagyanka_qualities"`
}

// Numerology computes the core numbers for a birth.
func Numerology(ctx context.Context, database *sql.DB, cfg *config.Config, input NumerologyInput) (*NumerologyOutput, error) {
	birth, lat, lon, system, err := resolveBirth(cfg, input.BirthInput)
	if err != nil {
		return nil, err
	}

	correct := cfg.SunriseCorrection && !input.SkipSunriseCorrection
	numbers, err := numerology.Compute(birth, lat, lon, correct)
	if err != nil {
		return nil, err
	}

	mq, err := vedic.NumberQualities(numbers.Mulanka)
	if err != nil {
		return nil, err
	}
	bq, err := vedic.NumberQualities(numbers.Bhagyanka)
	if err != nil {
		return nil, err
	}

	out := &NumerologyOutput{
		Numbers:            numbers,
		MulankaQualities:   mq,
		BhagyankaQualities: bq,
	}

	if input.Save {
		id, err := saveAnalysis(database, KindNumerology, birth, lat, lon, string(system), out)
		if err != nil {
			return nil, err
		}
		out.ID = id
	}
	return out, nil
}

// saveAnalysis serializes an operation result and stores it under a fresh
// ULID, returning the ID.
func saveAnalysis(database *sql.DB, kind string, birth time.Time, lat, lon float64, ayanamsa string, result any) (string, error) {
	id, err := generateULID()
	if err != nil {
		return "", errors.NewInternal(err)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	a := &db.Analysis{
		ID:        id,
		Kind:      kind,
		BirthTime: birth.Format(time.RFC3339),
		Latitude:  lat,
		Longitude: lon,
		Ayanamsa:  ayanamsa,
		Result:    string(payload),
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := db.InsertAnalysis(database, a); err != nil {
		return "", err
	}
	return id, nil
}
