package ops

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
)

// ExportFormat selects the export file format.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	RunID  string       `json:"run_id"`
	Format ExportFormat `json:"format,omitempty"` // default: csv
	Path   string       `json:"path,omitempty"`   // default: <baseDir>/exports/temporal-<id>.<ext>
	// BaseDir anchors the default export directory; the caller passes the
	// application base dir (~/.graha).
	BaseDir string `json:"-"`
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Rows       int    `json:"rows"`
	ExportedAt int64  `json:"exported_at"`
}

// exportEnvelope is the JSON export shape: the run header plus its points.
type exportEnvelope struct {
	Run    *db.TemporalRun    `json:"run"`
	Points []db.TemporalPoint `json:"points"`
}

// Export writes a stored temporal run to a CSV or JSON file. The file is
// written to a temp path and renamed into place so a failed export never
// leaves a partial file behind.
func Export(ctx context.Context, database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	runID := strings.TrimSpace(input.RunID)
	if runID == "" {
		return nil, errors.NewValidation("run_id is required")
	}

	format := input.Format
	if format == "" {
		format = ExportCSV
	}
	if format != ExportCSV && format != ExportJSON {
		return nil, errors.NewUnknownSystem("export format", string(format), []string{string(ExportCSV), string(ExportJSON)})
	}

	run, err := db.GetTemporalRun(database, runID)
	if err != nil {
		return nil, err
	}
	points, err := db.GetTemporalPoints(database, runID, "")
	if err != nil {
		return nil, err
	}

	path := input.Path
	if path == "" {
		if input.BaseDir == "" {
			return nil, errors.NewValidation("path or base directory is required")
		}
		path = filepath.Join(input.BaseDir, "exports", fmt.Sprintf("temporal-%s.%s", runID, format))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	tempPath := path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}
	success := false
	defer func() {
		file.Close()
		if !success {
			os.Remove(tempPath)
		}
	}()

	switch format {
	case ExportCSV:
		err = writeCSV(file, points)
	case ExportJSON:
		err = json.NewEncoder(file).Encode(exportEnvelope{Run: run, Points: points})
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       path,
		Format:     string(format),
		Rows:       len(points),
		ExportedAt: time.Now().Unix(),
	}, nil
}

// writeCSV emits one row per (date, planet) pair.
func writeCSV(file *os.File, points []db.TemporalPoint) error {
	w := csv.NewWriter(file)
	if err := w.Write([]string{"date", "planet", "numerology_score", "dignity_score"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Date,
			p.Planet,
			strconv.FormatFloat(p.NumerologyScore, 'f', 2, 64),
			strconv.FormatFloat(p.DignityScore, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
