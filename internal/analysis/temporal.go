package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ssanyal/graha/internal/chart"
	"github.com/ssanyal/graha/internal/dignity"
	"github.com/ssanyal/graha/internal/ephemeris"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/numerology"
	"github.com/ssanyal/graha/internal/vedic"
	"github.com/ssanyal/graha/internal/zodiac"
)

// defaultTemporalWorkers bounds chart computation concurrency when the
// request does not say otherwise.
const defaultTemporalWorkers = 4

// TemporalRequest describes a date-range score generation run. Start and End
// are both inclusive; charts are cast for local noon so the scores represent
// the middle of each civil day.
type TemporalRequest struct {
	Start     time.Time
	End       time.Time
	Latitude  float64
	Longitude float64
	Ayanamsa  zodiac.AyanamsaSystem
	Workers   int
	Provider  ephemeris.Provider
}

// DayScores is one day in a temporal series. NumerologyScores is the
// discrete system: the day's Mulanka planet at full strength, everything
// else at zero. DignityScores is the continuous astrological system.
type DayScores struct {
	Date             time.Time                `json:"date"`
	Mulanka          int                      `json:"mulanka"`
	MulankaPlanet    vedic.Planet             `json:"mulanka_planet"`
	NumerologyScores map[vedic.Planet]float64 `json:"numerology_scores"`
	DignityScores    map[vedic.Planet]float64 `json:"dignity_scores"`
}

// SeriesStats summarizes one planet's dignity trace.
type SeriesStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// TemporalSeries is the assembled run: successful days in date order, the
// dates that failed, and per-planet statistics over the successful days.
type TemporalSeries struct {
	Start time.Time                    `json:"start"`
	End   time.Time                    `json:"end"`
	Days  []DayScores                  `json:"days"`
	Gaps  []time.Time                  `json:"gaps,omitempty"`
	Stats map[vedic.Planet]SeriesStats `json:"stats"`
}

// GenerateTemporal computes daily numerology and dignity scores across the
// range. Days are computed concurrently under a bounded worker pool and
// reassembled in date order; a day that fails becomes a gap rather than
// aborting the run. On cancellation the series built so far is returned
// together with the context error.
func GenerateTemporal(ctx context.Context, req TemporalRequest) (*TemporalSeries, error) {
	start := truncateToDay(req.Start)
	end := truncateToDay(req.End)
	if end.Before(start) {
		return nil, errors.NewValidationf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, errors.NewInvalidCoordinates(req.Latitude, req.Longitude)
	}
	if _, err := zodiac.Ayanamsa(0, req.Ayanamsa); err != nil {
		return nil, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = defaultTemporalWorkers
	}
	provider := req.Provider
	if provider == nil {
		provider = ephemeris.NewAnalytic()
	}

	numDays := int(end.Sub(start).Hours()/24) + 1
	results := make([]*DayScores, numDays)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < numDays; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		date := start.AddDate(0, 0, i)
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			day, err := scoreDay(date, req, provider)
			if err != nil {
				// Recorded as a gap during assembly.
				return nil
			}
			results[i] = day
			return nil
		})
	}

	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	series := &TemporalSeries{Start: start, End: end}
	for i, day := range results {
		if day == nil {
			series.Gaps = append(series.Gaps, start.AddDate(0, 0, i))
			continue
		}
		series.Days = append(series.Days, *day)
	}
	series.Stats = computeStats(series.Days)

	if waitErr != nil {
		return series, waitErr
	}
	return series, nil
}

// scoreDay builds the noon chart for one date and scores every planet.
func scoreDay(date time.Time, req TemporalRequest, provider ephemeris.Provider) (*DayScores, error) {
	mulanka, err := numerology.Mulanka(date.Day())
	if err != nil {
		return nil, err
	}
	mulankaPlanet, err := vedic.PlanetForNumber(mulanka)
	if err != nil {
		return nil, err
	}

	numerologyScores := make(map[vedic.Planet]float64, len(vedic.Planets))
	for _, p := range vedic.Planets {
		numerologyScores[p] = 0
	}
	numerologyScores[mulankaPlanet] = 100

	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	c, err := chart.New(noon, req.Latitude, req.Longitude, req.Ayanamsa, provider)
	if err != nil {
		return nil, err
	}
	positions, err := c.Positions()
	if err != nil {
		return nil, err
	}

	dignityScores := make(map[vedic.Planet]float64, len(vedic.Planets))
	for _, p := range vedic.Planets {
		pos := positions[p]
		result := dignity.Score(p, pos.Longitude, dignity.Modifiers{
			Retrograde:    pos.Retrograde,
			Combust:       pos.Combust,
			SunSeparation: pos.SunSeparation,
		})
		dignityScores[p] = result.FinalScore
	}

	return &DayScores{
		Date:             date,
		Mulanka:          mulanka,
		MulankaPlanet:    mulankaPlanet,
		NumerologyScores: numerologyScores,
		DignityScores:    dignityScores,
	}, nil
}

func computeStats(days []DayScores) map[vedic.Planet]SeriesStats {
	stats := make(map[vedic.Planet]SeriesStats, len(vedic.Planets))
	if len(days) == 0 {
		return stats
	}
	for _, p := range vedic.Planets {
		s := SeriesStats{Min: 101, Max: -1}
		var sum float64
		for _, d := range days {
			v := d.DignityScores[p]
			sum += v
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		s.Mean = sum / float64(len(days))
		stats[p] = s
	}
	return stats
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
