package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/ssanyal/graha/internal/analysis"
	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/vedic"
)

// TemporalInput contains parameters for the Temporal operation.
type TemporalInput struct {
	StartDate string   `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string   `json:"end_date"`   // YYYY-MM-DD, inclusive
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Ayanamsa  string   `json:"ayanamsa,omitempty"`
	// NoSave computes without persisting the run.
	NoSave bool `json:"no_save,omitempty"`
}

// TemporalOutput contains the result of the Temporal operation.
type TemporalOutput struct {
	ID     string                   `json:"id,omitempty"`
	Series *analysis.TemporalSeries `json:"series"`
}

// Temporal generates the daily score series for a date range and stores the
// run. A cancelled or partially failed generation is not persisted.
func Temporal(ctx context.Context, database *sql.DB, cfg *config.Config, input TemporalInput) (*TemporalOutput, error) {
	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}

	lat := cfg.DefaultLatitude
	if input.Latitude != nil {
		lat = *input.Latitude
	}
	lon := cfg.DefaultLongitude
	if input.Longitude != nil {
		lon = *input.Longitude
	}
	system, err := resolveAyanamsa(cfg, input.Ayanamsa)
	if err != nil {
		return nil, err
	}

	series, err := analysis.GenerateTemporal(ctx, analysis.TemporalRequest{
		Start:     start,
		End:       end,
		Latitude:  lat,
		Longitude: lon,
		Ayanamsa:  system,
		Workers:   cfg.TemporalWorkers,
	})
	if err != nil {
		return nil, err
	}

	out := &TemporalOutput{Series: series}
	if input.NoSave {
		return out, nil
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	run := &db.TemporalRun{
		ID:        id,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Latitude:  lat,
		Longitude: lon,
		Ayanamsa:  string(system),
		DayCount:  len(series.Days),
		GapCount:  len(series.Gaps),
		CreatedAt: time.Now().UnixMilli(),
	}
	var points []db.TemporalPoint
	for _, day := range series.Days {
		for _, p := range vedic.Planets {
			points = append(points, db.TemporalPoint{
				Date:            day.Date.Format("2006-01-02"),
				Planet:          p.String(),
				NumerologyScore: day.NumerologyScores[p],
				DignityScore:    day.DignityScores[p],
			})
		}
	}
	if err := db.InsertTemporalRun(database, run, points); err != nil {
		return nil, err
	}
	out.ID = id
	return out, nil
}
