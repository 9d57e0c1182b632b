package ops

import (
	"context"
	"database/sql"

	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/ephemeris"
)

// ChartInput contains parameters for the Chart operation.
type ChartInput struct {
	BirthInput
	// HouseSystem selects the house division: "placidus" (default), "equal",
	// or "whole_sign".
	HouseSystem string `json:"house_system,omitempty"`
	// Save persists the chart and returns its ID.
	Save bool `json:"save,omitempty"`
}

// ChartOutput contains the result of the Chart operation.
type ChartOutput struct {
	ID    string         `json:"id,omitempty"`
	Chart *chart.Summary `json:"chart"`
}

// Chart casts a complete sidereal birth chart.
func Chart(ctx context.Context, database *sql.DB, cfg *config.Config, input ChartInput) (*ChartOutput, error) {
	birth, lat, lon, system, err := resolveBirth(cfg, input.BirthInput)
	if err != nil {
		return nil, err
	}
	name := input.HouseSystem
	if name == "" {
		name = cfg.HouseSystem
	}
	hs, err := ephemeris.ParseHouseSystem(name)
	if err != nil {
		return nil, err
	}

	c, err := chart.New(birth, lat, lon, system, nil, chart.WithHouseSystem(hs))
	if err != nil {
		return nil, err
	}
	summary, err := c.Summarize()
	if err != nil {
		return nil, err
	}

	out := &ChartOutput{Chart: summary}
	if input.Save {
		id, err := saveAnalysis(database, KindChart, birth, lat, lon, string(system), out)
		if err != nil {
			return nil, err
		}
		out.ID = id
	}
	return out, nil
}
