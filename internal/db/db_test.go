package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/errors"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInitCreatesSchema(t *testing.T) {
	database := newTestDB(t)

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}

	for _, table := range []string{"analyses", "temporal_runs", "temporal_points"} {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestInitIdempotent(t *testing.T) {
	dir := t.TempDir()
	d1, err := Init(dir)
	if err != nil {
		t.Fatalf("first Init error = %v", err)
	}
	d1.Close()

	d2, err := Init(dir)
	if err != nil {
		t.Fatalf("second Init error = %v", err)
	}
	d2.Close()
}

func TestConfigurePool(t *testing.T) {
	database := newTestDB(t)
	cfg := config.DefaultConfig()
	cfg.DBMaxOpenConns = 2
	cfg.DBMaxIdleConns = 1
	ConfigurePool(database, cfg)
	ConfigurePool(database, nil) // must not panic
}

func sampleAnalysis(id string) *Analysis {
	return &Analysis{
		ID:        id,
		Kind:      "numerology",
		BirthTime: "1984-08-27T06:15:00+05:30",
		Latitude:  28.6139,
		Longitude: 77.1025,
		Ayanamsa:  "lahiri",
		Result:    `{"mulanka":9}`,
		CreatedAt: time.Now().UnixMilli(),
	}
}

func TestInsertAndGetAnalysis(t *testing.T) {
	database := newTestDB(t)

	a := sampleAnalysis("01TESTANALYSIS00000000000A")
	if err := InsertAnalysis(database, a); err != nil {
		t.Fatalf("InsertAnalysis error = %v", err)
	}

	got, err := GetAnalysis(database, a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis error = %v", err)
	}
	if got.Kind != "numerology" || got.Result != `{"mulanka":9}` {
		t.Errorf("got %+v", got)
	}
	if got.Latitude != 28.6139 {
		t.Errorf("latitude = %g, want 28.6139", got.Latitude)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	database := newTestDB(t)
	_, err := GetAnalysis(database, "missing")
	if !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestListAnalyses(t *testing.T) {
	database := newTestDB(t)

	for i, id := range []string{"01A", "01B", "01C"} {
		a := sampleAnalysis(id)
		a.CreatedAt = int64(1000 + i)
		if i == 2 {
			a.Kind = "dignity"
		}
		if err := InsertAnalysis(database, a); err != nil {
			t.Fatalf("InsertAnalysis error = %v", err)
		}
	}

	all, total, err := ListAnalyses(database, "", 10, 0)
	if err != nil {
		t.Fatalf("ListAnalyses error = %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("total/len = %d/%d, want 3/3", total, len(all))
	}
	// Newest first.
	if all[0].ID != "01C" {
		t.Errorf("first = %s, want 01C", all[0].ID)
	}

	filtered, total, err := ListAnalyses(database, "dignity", 10, 0)
	if err != nil {
		t.Fatalf("filtered list error = %v", err)
	}
	if total != 1 || len(filtered) != 1 || filtered[0].Kind != "dignity" {
		t.Errorf("filtered = %d rows, total %d", len(filtered), total)
	}

	page, total, err := ListAnalyses(database, "", 2, 2)
	if err != nil {
		t.Fatalf("paged list error = %v", err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("page = %d rows, total %d; want 1 row, total 3", len(page), total)
	}
}

func TestSoftDeleteAnalysis(t *testing.T) {
	database := newTestDB(t)

	a := sampleAnalysis("01DEL")
	if err := InsertAnalysis(database, a); err != nil {
		t.Fatalf("InsertAnalysis error = %v", err)
	}
	if err := SoftDeleteAnalysis(database, a.ID, time.Now().UnixMilli()); err != nil {
		t.Fatalf("SoftDeleteAnalysis error = %v", err)
	}

	if _, err := GetAnalysis(database, a.ID); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("deleted row still visible: %v", err)
	}

	// Double delete is NotFound.
	if err := SoftDeleteAnalysis(database, a.ID, time.Now().UnixMilli()); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("second delete err = %v, want NOT_FOUND", err)
	}

	_, total, err := ListAnalyses(database, "", 10, 0)
	if err != nil {
		t.Fatalf("ListAnalyses error = %v", err)
	}
	if total != 0 {
		t.Errorf("deleted row counted: total = %d", total)
	}
}

func TestTemporalRunRoundTrip(t *testing.T) {
	database := newTestDB(t)

	run := &TemporalRun{
		ID:        "01RUN",
		StartDate: "2021-03-01",
		EndDate:   "2021-03-03",
		Latitude:  28.6139,
		Longitude: 77.1025,
		Ayanamsa:  "lahiri",
		DayCount:  3,
		GapCount:  0,
		CreatedAt: time.Now().UnixMilli(),
	}
	points := []TemporalPoint{
		{Date: "2021-03-01", Planet: "Sun", NumerologyScore: 100, DignityScore: 82.5},
		{Date: "2021-03-01", Planet: "Moon", NumerologyScore: 0, DignityScore: 40},
		{Date: "2021-03-02", Planet: "Sun", NumerologyScore: 0, DignityScore: 81},
	}
	if err := InsertTemporalRun(database, run, points); err != nil {
		t.Fatalf("InsertTemporalRun error = %v", err)
	}

	got, err := GetTemporalRun(database, "01RUN")
	if err != nil {
		t.Fatalf("GetTemporalRun error = %v", err)
	}
	if got.DayCount != 3 || got.StartDate != "2021-03-01" {
		t.Errorf("got %+v", got)
	}

	all, err := GetTemporalPoints(database, "01RUN", "")
	if err != nil {
		t.Fatalf("GetTemporalPoints error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d points, want 3", len(all))
	}
	// Ordered by date then planet.
	if all[0].Planet != "Moon" || all[2].Date != "2021-03-02" {
		t.Errorf("ordering wrong: %+v", all)
	}

	sunOnly, err := GetTemporalPoints(database, "01RUN", "Sun")
	if err != nil {
		t.Fatalf("filtered points error = %v", err)
	}
	if len(sunOnly) != 2 {
		t.Errorf("got %d Sun points, want 2", len(sunOnly))
	}
}

func TestDeleteTemporalRunCascades(t *testing.T) {
	database := newTestDB(t)

	run := &TemporalRun{
		ID: "01GONE", StartDate: "2021-01-01", EndDate: "2021-01-01",
		Ayanamsa: "lahiri", DayCount: 1, CreatedAt: time.Now().UnixMilli(),
	}
	points := []TemporalPoint{{Date: "2021-01-01", Planet: "Sun", DignityScore: 50}}
	if err := InsertTemporalRun(database, run, points); err != nil {
		t.Fatalf("InsertTemporalRun error = %v", err)
	}

	if err := DeleteTemporalRun(database, "01GONE"); err != nil {
		t.Fatalf("DeleteTemporalRun error = %v", err)
	}
	if _, err := GetTemporalRun(database, "01GONE"); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("run still present: %v", err)
	}

	var count int
	if err := database.QueryRow(
		"SELECT COUNT(*) FROM temporal_points WHERE run_id = ?", "01GONE",
	).Scan(&count); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 0 {
		t.Errorf("%d orphan points left behind", count)
	}

	if err := DeleteTemporalRun(database, "01GONE"); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("second delete err = %v, want NOT_FOUND", err)
	}
}

func TestTemporalRunTransactionRollback(t *testing.T) {
	database := newTestDB(t)

	run := &TemporalRun{
		ID: "01TX", StartDate: "2021-01-01", EndDate: "2021-01-02",
		Ayanamsa: "lahiri", DayCount: 2, CreatedAt: time.Now().UnixMilli(),
	}
	// Duplicate primary key inside the batch forces a mid-transaction error.
	points := []TemporalPoint{
		{Date: "2021-01-01", Planet: "Sun", DignityScore: 50},
		{Date: "2021-01-01", Planet: "Sun", DignityScore: 60},
	}
	if err := InsertTemporalRun(database, run, points); err == nil {
		t.Fatal("expected error from duplicate point")
	}

	// Neither the header nor the first point survived.
	if _, err := GetTemporalRun(database, "01TX"); !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("header survived rollback: %v", err)
	}
}
