package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/table"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertSmartAlerts is a helper test function to insert smart alerts.
func InsertSmartAlerts(t *testing.T, exc qrm.Executable, alerts ...pgmodels.SmartAlert) {
	t.Helper()

	if len(alerts) == 0 {
		return
	}

	_, err := table.SmartAlert.INSERT(table.SmartAlert.AllColumns).MODELS(alerts).Exec(exc)
	if err != nil {
		t.Fatal("can't insert smart alerts", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.RefreshRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.RefreshRun.INSERT(table.RefreshRun.AllColumns.Except(table.RefreshRun.ID)).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// GetSmartAlerts is a helper test function to get all smart alerts.
func GetSmartAlerts(t *testing.T, queryable qrm.Queryable) []pgmodels.SmartAlert {
	t.Helper()

	alerts := []pgmodels.SmartAlert{}
	err := table.SmartAlert.SELECT(table.SmartAlert.AllColumns).
		WHERE(table.SmartAlert.ID.IS_NOT_NULL()).
		ORDER_BY(table.SmartAlert.ID.ASC()).
		Query(queryable, &alerts)
	if err != nil {
		t.Fatal("can't get smart alerts", err)
	}

	return alerts
}

// GetRuns is a helper test function to get all runs, oldest first.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.RefreshRun {
	t.Helper()

	runs := []pgmodels.RefreshRun{}
	err := table.RefreshRun.SELECT(table.RefreshRun.AllColumns).
		WHERE(table.RefreshRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.RefreshRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// CleanupData is a helper test function to delete all data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.SmartAlert.DELETE().WHERE(table.SmartAlert.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete smart alerts data", err)
	}

	_, err = table.RefreshRun.DELETE().WHERE(table.RefreshRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}
}
