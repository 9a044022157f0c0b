package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	tableEvents = "events"

	// date и time - ключевые слова SQL, поэтому в кавычках
	colDate = `"date"`
	colTime = `"time"`
)

var bookingColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"user_id",
	colDate,
	colTime,
	"service1",
	"service2",
	"selected_services",
	"total_price",
	"status",
	"remarks",
	"created_at",
	"updated_at",
}

// likeEscaper экранирует спецсимволы LIKE в пользовательском запросе
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository репозиторий для работы с бронированиями (таблица events)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование и заполняет id и временные метки
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert(tableEvents).
		Columns(
			"name",
			"phone",
			"email",
			"user_id",
			colDate,
			colTime,
			"service1",
			"service2",
			"selected_services",
			"total_price",
			"status",
			"remarks",
		).
		Values(
			booking.Name,
			booking.Phone,
			booking.Email,
			booking.UserID,
			booking.Date,
			booking.Time,
			booking.Service1,
			booking.Service2,
			booking.SelectedServices,
			booking.TotalPrice,
			string(booking.Status),
			booking.Remarks,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableEvents).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени
//
// Примеры:
//
//	// Все бронирования владельца, включая отменённые
//	domain.BookingsFilter{Email: &email, IncludeCancelled: true}
//
//	// Активные бронирования на дату
//	domain.BookingsFilter{StartDate: &d, EndDate: &d}
//
//	// Поиск по имени среди активных
//	domain.BookingsFilter{NameQuery: &q}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).From(tableEvents)

	if filter.Email != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"email": *filter.Email})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{colDate: *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{colDate: *filter.EndDate})
	}
	if filter.NameQuery != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + likeEscaper.Replace(*filter.NameQuery) + "%"})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := selectBuilder.
		OrderBy(colDate+" ASC", colTime+" ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CancelByIdentity отменяет все ожидающие и подтверждённые бронирования владельца
// на указанные дату и время. Возвращает количество затронутых строк (0 - не ошибка)
func (r *Repository) CancelByIdentity(ctx context.Context, email string, date types.Date, t types.TimeString, remarks string) (int64, error) {
	cancellable := make([]string, len(domain.CancellableStatuses))
	for i, s := range domain.CancellableStatuses {
		cancellable[i] = string(s)
	}

	query, args, err := psqlbuilder.Update(tableEvents).
		Set("status", string(domain.StatusCancelled)).
		Set("remarks", remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"email":  email,
			colDate:  date,
			colTime:  t,
			"status": cancellable,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelByIdentity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelByIdentity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelByIdentity - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если статус строки уже не from, ничего не меняет и возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, remarks string) error {
	query, args, err := psqlbuilder.Update(tableEvents).
		Set("status", string(to)).
		Set("remarks", remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// CountsByDate считает неотменённые бронирования по дням в диапазоне [start, end]
// Дни без бронирований в результат не попадают
func (r *Repository) CountsByDate(ctx context.Context, start, end types.Date) ([]domain.DayCount, error) {
	query, args, err := psqlbuilder.Select(colDate, "COUNT(*)").
		From(tableEvents).
		Where(squirrel.GtOrEq{colDate: start}).
		Where(squirrel.LtOrEq{colDate: end}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		GroupBy(colDate).
		OrderBy(colDate + " ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountsByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountsByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.DayCount, 0)
	for rows.Next() {
		var c domain.DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: CountsByDate - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountsByDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountsByTime считает неотменённые бронирования на дату в разрезе времени начала
func (r *Repository) CountsByTime(ctx context.Context, date types.Date) ([]domain.TimeCount, error) {
	query, args, err := psqlbuilder.Select(colTime, "COUNT(*)").
		From(tableEvents).
		Where(squirrel.Eq{colDate: date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		GroupBy(colTime).
		OrderBy(colTime + " ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountsByTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountsByTime - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.TimeCount, 0)
	for rows.Next() {
		var c domain.TimeCount
		if err := rows.Scan(&c.Time, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: CountsByTime - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountsByTime - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking читает одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Phone,
		&booking.Email,
		&booking.UserID,
		&booking.Date,
		&booking.Time,
		&booking.Service1,
		&booking.Service2,
		&booking.SelectedServices,
		&booking.TotalPrice,
		&booking.Status,
		&booking.Remarks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
