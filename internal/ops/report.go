package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/report"
)

// ReportInput contains parameters for the Report operation. Either ID (a
// stored analysis) or birth data must be given.
type ReportInput struct {
	ID string `json:"id,omitempty"`
	BirthInput
	// SkipSunriseCorrection mirrors the Analyze flag for fresh reports.
	SkipSunriseCorrection bool `json:"skip_sunrise_correction,omitempty"`
	// HTML additionally renders the markdown to HTML.
	HTML bool `json:"html,omitempty"`
}

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	ID       string `json:"id,omitempty"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// Report builds the markdown report for a stored or freshly computed
// analysis. A stored record must be of kind "analysis": the single-facet
// kinds do not carry enough for a full report.
func Report(ctx context.Context, database *sql.DB, cfg *config.Config, input ReportInput) (*ReportOutput, error) {
	var analyzed *AnalyzeOutput

	if id := strings.TrimSpace(input.ID); id != "" {
		stored, err := db.GetAnalysis(database, id)
		if err != nil {
			return nil, err
		}
		if stored.Kind != KindAnalysis {
			return nil, errors.NewValidationf("record %s has kind %q; reports need a full analysis", id, stored.Kind)
		}
		analyzed = &AnalyzeOutput{}
		if err := json.Unmarshal([]byte(stored.Result), analyzed); err != nil {
			return nil, errors.NewInternal(err)
		}
		analyzed.ID = id
	} else {
		var err error
		analyzed, err = Analyze(ctx, database, cfg, AnalyzeInput{
			BirthInput:            input.BirthInput,
			SkipSunriseCorrection: input.SkipSunriseCorrection,
			NoSave:                true,
		})
		if err != nil {
			return nil, err
		}
	}

	md, err := report.Build(&report.Data{
		Numbers: analyzed.Numbers,
		Chart:   analyzed.Chart,
		Support: analyzed.Support,
	})
	if err != nil {
		return nil, err
	}

	out := &ReportOutput{ID: analyzed.ID, Markdown: md}
	if input.HTML {
		html, err := report.RenderHTML(md)
		if err != nil {
			return nil, err
		}
		out.HTML = html
	}
	return out, nil
}
