package ops

import (
	"context"
	"testing"

	"github.com/ssanyal/graha/internal/db"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/vedic"
)

func TestTemporalOperation(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Temporal(context.Background(), database, cfg, TemporalInput{
		StartDate: "2021-03-01",
		EndDate:   "2021-03-03",
	})
	if err != nil {
		t.Fatalf("Temporal error = %v", err)
	}
	if len(out.Series.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(out.Series.Days))
	}
	if out.ID == "" {
		t.Fatal("run was not persisted")
	}

	run, err := db.GetTemporalRun(database, out.ID)
	if err != nil {
		t.Fatalf("GetTemporalRun error = %v", err)
	}
	if run.DayCount != 3 || run.StartDate != "2021-03-01" {
		t.Errorf("stored run = %+v", run)
	}

	points, err := db.GetTemporalPoints(database, out.ID, "")
	if err != nil {
		t.Fatalf("GetTemporalPoints error = %v", err)
	}
	if len(points) != 3*len(vedic.Planets) {
		t.Errorf("got %d points, want %d", len(points), 3*len(vedic.Planets))
	}
}

func TestTemporalOperationNoSave(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	out, err := Temporal(context.Background(), database, cfg, TemporalInput{
		StartDate: "2021-03-01",
		EndDate:   "2021-03-01",
		NoSave:    true,
	})
	if err != nil {
		t.Fatalf("Temporal error = %v", err)
	}
	if out.ID != "" {
		t.Errorf("no_save run has ID %q", out.ID)
	}

	runs, total, err := db.ListTemporalRuns(database, 10, 0)
	if err != nil {
		t.Fatalf("ListTemporalRuns error = %v", err)
	}
	if total != 0 || len(runs) != 0 {
		t.Errorf("run persisted despite no_save: %d", total)
	}
}

func TestTemporalOperationValidation(t *testing.T) {
	database := newTestDB(t)
	cfg := testConfig()

	if _, err := Temporal(context.Background(), database, cfg, TemporalInput{
		StartDate: "2021-03-05",
		EndDate:   "2021-03-01",
	}); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("reversed range err = %v, want validation", err)
	}

	if _, err := Temporal(context.Background(), database, cfg, TemporalInput{
		StartDate: "bad",
		EndDate:   "2021-03-01",
	}); !errors.IsCode(err, errors.ErrValidation) {
		t.Errorf("bad date err = %v, want validation", err)
	}
}
