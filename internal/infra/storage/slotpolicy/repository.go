package slotpolicy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const (
	tableSlotPolicy = "slot_policy"

	// таблица хранит ровно одну строку
	singletonID = 1
)

// Repository репозиторий политики слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохранённую политику. ErrPolicyNotFound, если админ её ещё не менял
func (r *Repository) Get(ctx context.Context) (*domain.SlotPolicy, error) {
	query, args, err := psqlbuilder.Select(
		"open_hour",
		"granularity_minutes",
		"weekdays_only",
		"updated_at",
	).
		From(tableSlotPolicy).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.SlotPolicy
	var updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&policy.OpenHour,
		&policy.GranularityMinutes,
		&policy.WeekdaysOnly,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// Save создает или перезаписывает единственную строку политики
func (r *Repository) Save(ctx context.Context, policy *domain.SlotPolicy) (*domain.SlotPolicy, error) {
	query, args, err := psqlbuilder.Insert(tableSlotPolicy).
		Columns("id", "open_hour", "granularity_minutes", "weekdays_only").
		Values(singletonID, policy.OpenHour, policy.GranularityMinutes, policy.WeekdaysOnly).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"open_hour = EXCLUDED.open_hour, " +
			"granularity_minutes = EXCLUDED.granularity_minutes, " +
			"weekdays_only = EXCLUDED.weekdays_only, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	saved := *policy
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}
