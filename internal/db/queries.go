package db

import (
	"database/sql"
	"strings"

	"github.com/ssanyal/graha/internal/errors"
)

// Analysis is a stored reading: the birth input plus the serialized result.
type Analysis struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	BirthTime string  `json:"birth_datetime"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Ayanamsa  string  `json:"ayanamsa"`
	Result    string  `json:"result"`
	CreatedAt int64   `json:"created_at"`
	DeletedAt *int64  `json:"deleted_at,omitempty"`
}

// TemporalRun is the header row of one stored temporal generation.
type TemporalRun struct {
	ID        string  `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Ayanamsa  string  `json:"ayanamsa"`
	DayCount  int     `json:"day_count"`
	GapCount  int     `json:"gap_count"`
	CreatedAt int64   `json:"created_at"`
}

// TemporalPoint is one planet's pair of scores on one day of a run.
type TemporalPoint struct {
	RunID           string  `json:"run_id"`
	Date            string  `json:"date"`
	Planet          string  `json:"planet"`
	NumerologyScore float64 `json:"numerology_score"`
	DignityScore    float64 `json:"dignity_score"`
}

// InsertAnalysis stores a new analysis row.
func InsertAnalysis(db *sql.DB, a *Analysis) error {
	query := `
		INSERT INTO analyses (
			id, kind, birth_datetime, latitude, longitude,
			ayanamsa, result_json, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`
	_, err := db.Exec(query,
		a.ID, a.Kind, a.BirthTime, a.Latitude, a.Longitude,
		a.Ayanamsa, a.Result, a.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by its ULID, excluding soft-deleted rows.
func GetAnalysis(db *sql.DB, id string) (*Analysis, error) {
	query := `
		SELECT id, kind, birth_datetime, latitude, longitude,
			ayanamsa, result_json, created_at, deleted_at
		FROM analyses
		WHERE id = ? AND deleted_at IS NULL
	`
	row := db.QueryRow(query, id)
	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return a, nil
}

// ListAnalyses returns active analyses newest-first, optionally filtered by
// kind, along with the total count matching the filter.
func ListAnalyses(db *sql.DB, kind string, limit, offset int) ([]*Analysis, int, error) {
	kind = strings.TrimSpace(kind)

	countQuery := "SELECT COUNT(*) FROM analyses WHERE deleted_at IS NULL"
	listQuery := `
		SELECT id, kind, birth_datetime, latitude, longitude,
			ayanamsa, result_json, created_at, deleted_at
		FROM analyses
		WHERE deleted_at IS NULL
	`
	var countArgs, listArgs []any
	if kind != "" {
		countQuery += " AND kind = ?"
		listQuery += " AND kind = ?"
		countArgs = append(countArgs, kind)
		listArgs = append(listArgs, kind)
	}
	listQuery += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	listArgs = append(listArgs, limit, offset)

	var total int
	if err := db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(listQuery, listArgs...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return out, total, nil
}

// SoftDeleteAnalysis marks an analysis deleted. Deleting an already-deleted
// or missing row returns NotFound.
func SoftDeleteAnalysis(db *sql.DB, id string, now int64) error {
	res, err := db.Exec(
		"UPDATE analyses SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*Analysis, error) {
	var a Analysis
	var deletedAt sql.NullInt64
	err := s.Scan(&a.ID, &a.Kind, &a.BirthTime, &a.Latitude, &a.Longitude,
		&a.Ayanamsa, &a.Result, &a.CreatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Int64
	}
	return &a, nil
}

// InsertTemporalRun stores a run header and all its points in one
// transaction so a partial write never survives.
func InsertTemporalRun(db *sql.DB, run *TemporalRun, points []TemporalPoint) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO temporal_runs (
			id, start_date, end_date, latitude, longitude,
			ayanamsa, day_count, gap_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartDate, run.EndDate, run.Latitude, run.Longitude,
		run.Ayanamsa, run.DayCount, run.GapCount, run.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO temporal_points (run_id, date, planet, numerology_score, dignity_score)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(run.ID, p.Date, p.Planet, p.NumerologyScore, p.DignityScore); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetTemporalRun retrieves a run header by ID.
func GetTemporalRun(db *sql.DB, id string) (*TemporalRun, error) {
	var r TemporalRun
	err := db.QueryRow(`
		SELECT id, start_date, end_date, latitude, longitude,
			ayanamsa, day_count, gap_count, created_at
		FROM temporal_runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.StartDate, &r.EndDate, &r.Latitude, &r.Longitude,
		&r.Ayanamsa, &r.DayCount, &r.GapCount, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &r, nil
}

// ListTemporalRuns returns run headers newest-first.
func ListTemporalRuns(db *sql.DB, limit, offset int) ([]*TemporalRun, int, error) {
	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM temporal_runs").Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT id, start_date, end_date, latitude, longitude,
			ayanamsa, day_count, gap_count, created_at
		FROM temporal_runs
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []*TemporalRun
	for rows.Next() {
		var r TemporalRun
		if err := rows.Scan(&r.ID, &r.StartDate, &r.EndDate, &r.Latitude, &r.Longitude,
			&r.Ayanamsa, &r.DayCount, &r.GapCount, &r.CreatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return out, total, nil
}

// GetTemporalPoints returns a run's points ordered by date then planet.
// Filtering by planet is optional.
func GetTemporalPoints(db *sql.DB, runID, planet string) ([]TemporalPoint, error) {
	query := `
		SELECT run_id, date, planet, numerology_score, dignity_score
		FROM temporal_points
		WHERE run_id = ?
	`
	args := []any{runID}
	if planet != "" {
		query += " AND planet = ?"
		args = append(args, planet)
	}
	query += " ORDER BY date, planet"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []TemporalPoint
	for rows.Next() {
		var p TemporalPoint
		if err := rows.Scan(&p.RunID, &p.Date, &p.Planet, &p.NumerologyScore, &p.DignityScore); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// DeleteTemporalRun removes a run and, via the cascade, its points.
func DeleteTemporalRun(db *sql.DB, id string) error {
	res, err := db.Exec("DELETE FROM temporal_runs WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}
