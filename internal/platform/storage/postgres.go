package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// DefaultRunTimeout is age after which unfinished run no longer blocks new runs.
const DefaultRunTimeout = time.Hour

// Option is custom configuration of Postgres.
type Option func(p *Postgres)

// Postgres is storage for smart alerts and refresh runs.
type Postgres struct {
	db         *sql.DB
	runTimeout time.Duration
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...Option) Postgres {
	p := Postgres{
		db:         db,
		runTimeout: DefaultRunTimeout,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// StartRun creates new unfinished refresh run in database and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
// Runs left unfinished for longer than run timeout are treated as abandoned.
func (p Postgres) StartRun(ctx context.Context) (*models.Run, error) {
	var run *models.Run

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		// serializes concurrent run starts.
		if _, err := tx.ExecContext(ctx, "LOCK TABLE refresh_run IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("can't lock runs: %w", err)
		}

		lastRun, err := getLastRun(ctx, tx)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil &&
			lastRun.FinishedAt == nil &&
			lastRun.Success == nil &&
			time.Since(lastRun.CreatedAt) < p.runTimeout {
			return platform.ErrAlreadyRunning
		}

		var newRun pgmodels.RefreshRun
		err = table.RefreshRun.INSERT(table.RefreshRun.CreatedAt).
			VALUES(pg.NOW()).
			RETURNING(table.RefreshRun.AllColumns).
			QueryContext(ctx, tx, &newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run = fromDBRun(&newRun)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't start run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.RefreshRun.AllColumns.Except(table.RefreshRun.ID, table.RefreshRun.CreatedAt)

	result, err := table.RefreshRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.RefreshRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run %d: %w", run.ID, errors.Join(err, qrm.ErrNoRows))
	}

	return nil
}

// ListByOwner returns alerts of userID, newest first.
func (p Postgres) ListByOwner(ctx context.Context, userID string) ([]models.SmartAlert, error) {
	alerts, err := listAlerts(ctx, p.db,
		table.SmartAlert.UserID.EQ(pg.String(userID)),
		table.SmartAlert.CreatedAt.DESC(), table.SmartAlert.ID.ASC(),
	)
	if err != nil {
		return nil, fmt.Errorf("can't list alerts of user %s: %w", userID, err)
	}

	return alerts, nil
}

// ListActive returns alerts which are active and not triggered yet, oldest first.
func (p Postgres) ListActive(ctx context.Context) ([]models.SmartAlert, error) {
	alerts, err := listAlerts(ctx, p.db,
		pg.AND(
			table.SmartAlert.IsActive.IS_TRUE(),
			table.SmartAlert.IsTriggered.IS_FALSE(),
		),
		table.SmartAlert.CreatedAt.ASC(), table.SmartAlert.ID.ASC(),
	)
	if err != nil {
		return nil, fmt.Errorf("can't list active alerts: %w", err)
	}

	return alerts, nil
}

// Get returns alert with id. It returns platform.ErrAlertNotFound if there is no such alert.
func (p Postgres) Get(ctx context.Context, id string) (models.SmartAlert, error) {
	var dbAlert pgmodels.SmartAlert
	err := table.SmartAlert.SELECT(table.SmartAlert.AllColumns).
		WHERE(table.SmartAlert.ID.EQ(pg.String(id))).
		QueryContext(ctx, p.db, &dbAlert)
	if errors.Is(err, qrm.ErrNoRows) {
		return models.SmartAlert{}, fmt.Errorf("%w: %s", platform.ErrAlertNotFound, id)
	}
	if err != nil {
		return models.SmartAlert{}, fmt.Errorf("can't get alert %s: %w", id, err)
	}

	alert, err := FromDBSmartAlert(&dbAlert)
	if err != nil {
		return models.SmartAlert{}, err
	}

	return *alert, nil
}

// Upsert inserts alert or replaces stored alert with the same id.
// Owner and creation time of stored alert are never changed.
// It returns platform.ErrAlertNotFound if the id belongs to alert of another user.
func (p Postgres) Upsert(ctx context.Context, alert models.SmartAlert) error {
	dbAlert, err := ToDBSmartAlert(&alert)
	if err != nil {
		return fmt.Errorf("can't convert alert %s: %w", alert.ID, err)
	}

	updatable := table.SmartAlert.MutableColumns.Except(table.SmartAlert.UserID, table.SmartAlert.CreatedAt)

	excludedExpressions := make([]pg.Expression, 0, len(updatable)) // converting to expression
	for _, col := range table.SmartAlert.EXCLUDED.MutableColumns.Except(
		table.SmartAlert.EXCLUDED.UserID,
		table.SmartAlert.EXCLUDED.CreatedAt,
	) {
		excludedExpressions = append(excludedExpressions, col)
	}

	result, err := table.SmartAlert.INSERT(table.SmartAlert.AllColumns).
		MODEL(dbAlert).
		ON_CONFLICT(table.SmartAlert.ID).
		DO_UPDATE(
			pg.SET(
				updatable.SET(pg.ROW(excludedExpressions...)),
			).WHERE(table.SmartAlert.UserID.EQ(table.SmartAlert.EXCLUDED.UserID)),
		).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't upsert alert %s: %w", alert.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't upsert alert %s: %w", alert.ID, err)
	}

	// conflicting row of another user is left untouched
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", platform.ErrAlertNotFound, alert.ID)
	}

	return nil
}

// Delete deletes alert with id owned by userID.
// It returns platform.ErrAlertNotFound if user has no such alert.
func (p Postgres) Delete(ctx context.Context, userID, id string) error {
	result, err := table.SmartAlert.DELETE().
		WHERE(pg.AND(
			table.SmartAlert.ID.EQ(pg.String(id)),
			table.SmartAlert.UserID.EQ(pg.String(userID)),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't delete alert %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't delete alert %s: %w", id, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", platform.ErrAlertNotFound, id)
	}

	return nil
}

func listAlerts(
	ctx context.Context,
	db qrm.Queryable,
	condition pg.BoolExpression,
	orderBy ...pg.OrderByClause,
) ([]models.SmartAlert, error) {
	dbAlerts := make([]pgmodels.SmartAlert, 0)
	err := table.SmartAlert.SELECT(table.SmartAlert.AllColumns).
		WHERE(condition).
		ORDER_BY(orderBy...).
		QueryContext(ctx, db, &dbAlerts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}

	alerts := make([]models.SmartAlert, 0, len(dbAlerts))
	for ix := range dbAlerts {
		alert, err := FromDBSmartAlert(&dbAlerts[ix])
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}

	return alerts, nil
}

func getLastRun(ctx context.Context, db qrm.Queryable) (*pgmodels.RefreshRun, error) {
	var run pgmodels.RefreshRun
	err := table.RefreshRun.SELECT(table.RefreshRun.AllColumns).
		ORDER_BY(table.RefreshRun.CreatedAt.DESC(), table.RefreshRun.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

// WithRunTimeout sets age after which unfinished run is treated as abandoned.
func WithRunTimeout(timeout time.Duration) Option {
	return func(p *Postgres) {
		p.runTimeout = timeout
	}
}
