package ops

import (
	"context"
	"database/sql"

	"github.com/ssanyal/graha/internal/analysis"
	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/numerology"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	BirthInput
	// SkipSunriseCorrection disables the Vedic day-boundary correction even
	// when the config enables it.
	SkipSunriseCorrection bool `json:"skip_sunrise_correction,omitempty"`
	// NoSave computes without persisting. The default is to store the
	// analysis, since it is the operation users come back to.
	NoSave bool `json:"no_save,omitempty"`
}

// AnalyzeOutput is the full numerology-plus-astrology reading.
type AnalyzeOutput struct {
	ID      string                    `json:"id,omitempty"`
	Numbers *numerology.CoreNumbers   `json:"numbers"`
	Chart   *chart.Summary            `json:"chart"`
	Support *analysis.SupportAnalysis `json:"support"`
}

// Analyze runs the full pipeline: core numbers, birth chart, dignity of both
// ruling planets, and the support/harmony verdict.
func Analyze(ctx context.Context, database *sql.DB, cfg *config.Config, input AnalyzeInput) (*AnalyzeOutput, error) {
	birth, lat, lon, system, err := resolveBirth(cfg, input.BirthInput)
	if err != nil {
		return nil, err
	}

	correct := cfg.SunriseCorrection && !input.SkipSunriseCorrection
	numbers, err := numerology.Compute(birth, lat, lon, correct)
	if err != nil {
		return nil, err
	}

	c, err := chart.New(birth, lat, lon, system, nil)
	if err != nil {
		return nil, err
	}
	summary, err := c.Summarize()
	if err != nil {
		return nil, err
	}

	support, err := analysis.AnalyzeSupport(numbers, c)
	if err != nil {
		return nil, err
	}

	out := &AnalyzeOutput{
		Numbers: numbers,
		Chart:   summary,
		Support: support,
	}
	if !input.NoSave {
		id, err := saveAnalysis(database, KindAnalysis, birth, lat, lon, string(system), out)
		if err != nil {
			return nil, err
		}
		out.ID = id
	}
	return out, nil
}
