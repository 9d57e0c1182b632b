package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
)

// KindTemporal addresses stored temporal runs in History.
const KindTemporal = "temporal"

// validKinds lists the accepted History kind filters.
var validKinds = []string{KindNumerology, KindChart, KindDignity, KindAnalysis, KindTemporal}

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	// Kind filters stored records: an analysis kind, "temporal" for runs,
	// or empty for all analyses.
	Kind   string `json:"kind,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// HistoryOutput contains the result of the History operation. Analyses and
// Runs are mutually exclusive: runs are listed only for kind "temporal".
type HistoryOutput struct {
	Analyses   []*db.Analysis    `json:"analyses,omitempty"`
	Runs       []*db.TemporalRun `json:"runs,omitempty"`
	Pagination Pagination        `json:"pagination"`
}

// History lists stored records newest-first.
func History(ctx context.Context, database *sql.DB, cfg *config.Config, input HistoryInput) (*HistoryOutput, error) {
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind != "" && !isValidKind(kind) {
		return nil, errors.NewUnknownSystem("record kind", input.Kind, validKinds)
	}
	limit, offset := clampPagination(input.Limit, input.Offset)

	out := &HistoryOutput{}
	var total int
	var err error
	if kind == KindTemporal {
		out.Runs, total, err = db.ListTemporalRuns(database, limit, offset)
	} else {
		out.Analyses, total, err = db.ListAnalyses(database, kind, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	out.Pagination = Pagination{
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
		Total:   total,
	}
	return out, nil
}

func isValidKind(kind string) bool {
	for _, k := range validKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID string `json:"id"`
	// Planet filters temporal run points to one graha.
	Planet string `json:"planet,omitempty"`
}

// FetchOutput contains the result of the Fetch operation. Exactly one of
// Analysis or Run is populated.
type FetchOutput struct {
	Analysis *db.Analysis       `json:"analysis,omitempty"`
	Result   json.RawMessage    `json:"result,omitempty"`
	Run      *db.TemporalRun    `json:"run,omitempty"`
	Points   []db.TemporalPoint `json:"points,omitempty"`
}

// Fetch retrieves a stored record by ID, checking analyses first and then
// temporal runs.
func Fetch(ctx context.Context, database *sql.DB, cfg *config.Config, input FetchInput) (*FetchOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	a, err := db.GetAnalysis(database, id)
	if err == nil {
		return &FetchOutput{Analysis: a, Result: json.RawMessage(a.Result)}, nil
	}
	if !errors.IsCode(err, errors.ErrNotFound) {
		return nil, err
	}

	run, err := db.GetTemporalRun(database, id)
	if err != nil {
		return nil, err
	}
	points, err := db.GetTemporalPoints(database, id, input.Planet)
	if err != nil {
		return nil, err
	}
	return &FetchOutput{Run: run, Points: points}, nil
}

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string `json:"id"`
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a stored record by ID. Analyses are soft-deleted; temporal
// runs are removed outright along with their points.
func Delete(ctx context.Context, database *sql.DB, cfg *config.Config, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	err := db.SoftDeleteAnalysis(database, id, time.Now().UnixMilli())
	if err == nil {
		return &DeleteOutput{ID: id, Deleted: true}, nil
	}
	if !errors.IsCode(err, errors.ErrNotFound) {
		return nil, err
	}

	if err := db.DeleteTemporalRun(database, id); err != nil {
		return nil, err
	}
	return &DeleteOutput{ID: id, Deleted: true}, nil
}
