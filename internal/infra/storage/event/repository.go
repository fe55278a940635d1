package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableBooking/pkg/timegrid"
)

const table = "events"

// Repository читает события заведения, занимающие столики
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOneOff возвращает разовые события с датой в [from, to)
func (r *Repository) ListOneOff(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"to_char(event_date, 'YYYY-MM-DD')",
		"to_char(start_time, 'HH24:MI')",
		"duration_minutes",
		"table_id",
	).
		From(table).
		Where(squirrel.Eq{"repeat": nil}).
		Where(squirrel.GtOrEq{"event_date": from.Time()}).
		Where(squirrel.Lt{"event_date": to.Time()}).
		OrderBy("event_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOneOff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOneOff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.ReservationRecord, 0)
	for rows.Next() {
		var (
			record   domain.ReservationRecord
			hour     string
			duration int
		)
		if err := rows.Scan(&record.Date, &hour, &duration, &record.Table); err != nil {
			return nil, fmt.Errorf("%w: ListOneOff - scan row: %w", ErrScanRow, err)
		}
		record.Hour = timegrid.Hour(hour)
		record.Duration = minutesToHours(duration)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOneOff - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

// ListRecurring возвращает повторяющиеся события, начавшиеся не позже to.
// Событие без даты начала действует всегда.
func (r *Repository) ListRecurring(ctx context.Context, to timegrid.Date) ([]domain.RecurringRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"repeat",
		"to_char(start_time, 'HH24:MI')",
		"duration_minutes",
		"table_id",
	).
		From(table).
		Where(squirrel.NotEq{"repeat": nil}).
		Where(squirrel.Or{
			squirrel.Eq{"event_date": nil},
			squirrel.Lt{"event_date": to.Time()},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.RecurringRecord, 0)
	for rows.Next() {
		var (
			record   domain.RecurringRecord
			hour     string
			duration int
			repeat   sql.NullString
		)
		if err := rows.Scan(&repeat, &hour, &duration, &record.Table); err != nil {
			return nil, fmt.Errorf("%w: ListRecurring - scan row: %w", ErrScanRow, err)
		}
		record.Repeat = repeat.String
		record.Hour = timegrid.Hour(hour)
		record.Duration = minutesToHours(duration)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

func minutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}
