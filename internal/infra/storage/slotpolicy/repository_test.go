package slotpolicy

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)
	updated := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT open_hour, granularity_minutes, weekdays_only, updated_at FROM slot_policy WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"open_hour", "granularity_minutes", "weekdays_only", "updated_at"}).
			AddRow(10, 15, false, updated))

	policy, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SlotPolicy{OpenHour: 10, GranularityMinutes: 15, WeekdaysOnly: false, UpdatedAt: updated}, *policy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM slot_policy`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestRepository_Get_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM slot_policy`).WillReturnError(errors.New("timeout"))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newRepo(t)
	updated := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO slot_policy \(id,open_hour,granularity_minutes,weekdays_only\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(1, 8, 20, true).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	saved, err := repo.Save(context.Background(), &domain.SlotPolicy{OpenHour: 8, GranularityMinutes: 20, WeekdaysOnly: true})
	require.NoError(t, err)
	assert.Equal(t, updated, saved.UpdatedAt)
	assert.Equal(t, 20, saved.GranularityMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
