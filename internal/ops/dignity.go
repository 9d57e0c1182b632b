package ops

import (
	"context"
	"database/sql"

	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/dignity"
	"github.com/ssanyal/graha/internal/vedic"
)

// DignityInput contains parameters for the Dignity operation.
type DignityInput struct {
	BirthInput
	// Planet limits the evaluation to one graha; empty scores all nine.
	Planet string `json:"planet,omitempty"`
	// Save persists the evaluation and returns its ID.
	Save bool `json:"save,omitempty"`
}

// DignityOutput contains the result of the Dignity operation.
type DignityOutput struct {
	ID         string              `json:"id,omitempty"`
	Results    []*dignity.Result   `json:"results"`
	Comparison *dignity.Comparison `json:"comparison,omitempty"`
}

// Dignity scores planetary dignity in the birth chart. With no planet named
// it evaluates all nine grahas and adds a comparative summary.
func Dignity(ctx context.Context, database *sql.DB, cfg *config.Config, input DignityInput) (*DignityOutput, error) {
	birth, lat, lon, system, err := resolveBirth(cfg, input.BirthInput)
	if err != nil {
		return nil, err
	}

	planets := vedic.Planets
	if input.Planet != "" {
		p, err := vedic.ParsePlanet(input.Planet)
		if err != nil {
			return nil, err
		}
		planets = []vedic.Planet{p}
	}

	c, err := chart.New(birth, lat, lon, system, nil)
	if err != nil {
		return nil, err
	}

	out := &DignityOutput{}
	scores := make(map[vedic.Planet]float64, len(planets))
	for _, p := range planets {
		result, err := scorePlanet(c, p)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, result)
		scores[p] = result.FinalScore
	}
	if len(planets) > 1 {
		out.Comparison = dignity.Compare(scores)
	}

	if input.Save {
		id, err := saveAnalysis(database, KindDignity, birth, lat, lon, string(system), out)
		if err != nil {
			return nil, err
		}
		out.ID = id
	}
	return out, nil
}

// scorePlanet evaluates one planet's dignity from its chart position.
func scorePlanet(c *chart.BirthChart, p vedic.Planet) (*dignity.Result, error) {
	pos, err := c.Position(p)
	if err != nil {
		return nil, err
	}
	return dignity.Score(p, pos.Longitude, dignity.Modifiers{
		Retrograde:    pos.Retrograde,
		Combust:       pos.Combust,
		SunSeparation: pos.SunSeparation,
	}), nil
}
