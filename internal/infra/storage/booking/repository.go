package booking

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

const table = "bookings"

// recordColumns колонки в том виде, в каком их потребляет индекс занятости
var recordColumns = []string{
	"to_char(booking_date, 'YYYY-MM-DD')",
	"to_char(start_time, 'HH24:MI')",
	"duration_minutes",
	"table_id",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDateRange возвращает бронирования с датой в [from, to)
func (r *Repository) ListByDateRange(ctx context.Context, from, to timegrid.Date) ([]domain.ReservationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From(table).
		Where(squirrel.GtOrEq{"booking_date": from.Time()}).
		Where(squirrel.Lt{"booking_date": to.Time()}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByTableAndDate возвращает бронирования столика на дату.
// Внутри транзакции используется для проверки пересечений перед вставкой.
func (r *Repository) ListByTableAndDate(ctx context.Context, tableID domain.TableID, date timegrid.Date) ([]domain.ReservationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From(table).
		Where(squirrel.Eq{"table_id": tableID, "booking_date": date.Time()}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTableAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTableAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Create сохраняет бронирование.
// Если в контексте передана транзакция, выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"booking_date",
			"start_time",
			"duration_minutes",
			"table_id",
			"people",
			"phone",
			"address",
		).
		Values(
			booking.Date.Time(),
			booking.Start.String(),
			int(booking.Duration)*timegrid.MinutesPerSlot,
			booking.Table,
			booking.People,
			booking.Phone,
			booking.Address,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// scanRecords сканирует результаты запроса в записи занятости
func scanRecords(rows *sql.Rows) ([]domain.ReservationRecord, error) {
	records := make([]domain.ReservationRecord, 0)

	for rows.Next() {
		var (
			record          domain.ReservationRecord
			hour            string
			durationMinutes int
		)
		if err := rows.Scan(&record.Date, &hour, &durationMinutes, &record.Table); err != nil {
			return nil, fmt.Errorf("%w: scanRecords - scan row: %w", ErrScanRow, err)
		}
		record.Hour = timegrid.Hour(hour)
		record.Duration = float64(durationMinutes) / 60

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRecords - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}
