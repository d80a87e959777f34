package slot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func window(fromHour, toHour int) domain.Window {
	return domain.Window{Start: types.MustTimeOfDay(fromHour, 0), End: types.MustTimeOfDay(toHour, 0)}
}

func TestCreateBatch_SkipsExisting(t *testing.T) {
	repo, mock := newRepo(t)

	slots := []*domain.Slot{
		{ProfessionalID: 1, Date: monday, StartTime: types.MustTimeOfDay(9, 0), Available: true},
		{ProfessionalID: 1, Date: monday, StartTime: types.MustTimeOfDay(10, 0), Available: true},
		{ProfessionalID: 1, Date: monday, StartTime: types.MustTimeOfDay(11, 0), Available: true},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedules (professional_id,date,start_time,available) VALUES ($1,$2,$3,$4),($5,$6,$7,$8),($9,$10,$11,$12) ON CONFLICT (professional_id, date, start_time) DO NOTHING")).
		WithArgs(
			int64(1), monday, "09:00:00", true,
			int64(1), monday, "10:00:00", true,
			int64(1), monday, "11:00:00", true,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.CreateBatch(context.Background(), slots)

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_SplitsLargeInput(t *testing.T) {
	repo, mock := newRepo(t)

	slots := make([]*domain.Slot, batchSize+1)
	for i := range slots {
		slots[i] = &domain.Slot{ProfessionalID: 1, Date: monday.AddDate(0, 0, i/10), StartTime: types.MustTimeOfDay(9, 0), Available: true}
	}

	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(0, batchSize))
	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateBatch(context.Background(), slots)

	require.NoError(t, err)
	assert.Equal(t, batchSize+1, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupy_FlipsFootprint(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE schedules SET available = $1 WHERE available = $2 AND date = $3 AND professional_id = $4 AND start_time >= $5 AND start_time < $6 RETURNING start_time")).
		WithArgs(false, true, monday, int64(3), "10:00:00", "12:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}).AddRow("10:00:00").AddRow("11:00:00"))

	occupied, err := repo.Occupy(context.Background(), 3, monday, window(10, 12))

	require.NoError(t, err)
	assert.Equal(t, []types.TimeOfDay{types.MustTimeOfDay(10, 0), types.MustTimeOfDay(11, 0)}, occupied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupy_StartSlotTaken(t *testing.T) {
	repo, mock := newRepo(t)

	// Только хвостовой слот был свободен, стартовый уже занят
	mock.ExpectQuery("UPDATE schedules SET available").
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}).AddRow("11:00:00"))

	_, err := repo.Occupy(context.Background(), 3, monday, window(10, 12))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupy_NoSlots(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("UPDATE schedules SET available").
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}))

	_, err := repo.Occupy(context.Background(), 3, monday, window(10, 11))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRelease(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedules SET available = $1 WHERE date = $2 AND professional_id = $3 AND start_time >= $4 AND start_time < $5")).
		WithArgs(true, monday, int64(3), "10:00:00", "12:00:00").
		WillReturnResult(sqlmock.NewResult(0, 2))

	released, err := repo.Release(context.Background(), 3, monday, window(10, 12))

	require.NoError(t, err)
	assert.Equal(t, int64(2), released)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable(t *testing.T) {
	repo, mock := newRepo(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, professional_id, date, start_time, available, created_at FROM schedules WHERE available = $1 AND date = $2 AND professional_id IN ($3,$4) ORDER BY professional_id ASC, start_time ASC")).
		WithArgs(true, monday, int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow(int64(10), int64(1), monday, "09:00:00", true, created).
			AddRow(int64(11), int64(2), monday, "10:00:00", true, created))

	slots, err := repo.ListAvailable(context.Background(), []int64{1, 2}, monday)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, types.MustTimeOfDay(10, 0), slots[1].StartTime)
	assert.Equal(t, int64(2), slots[1].ProfessionalID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailable_NoProfessionals(t *testing.T) {
	repo, mock := newRepo(t)

	slots, err := repo.ListAvailable(context.Background(), nil, monday)

	require.NoError(t, err)
	assert.Empty(t, slots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Run("available slot", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedules WHERE available = $1 AND id = $2")).
			WithArgs(true, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("occupied slot", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM schedules").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM schedules WHERE id = \\$1").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(int64(5), int64(1), monday, "10:00:00", false, time.Now()))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrSlotOccupied)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing slot", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM schedules").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM schedules WHERE id = \\$1").
			WillReturnRows(sqlmock.NewRows(slotColumns))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrSlotNotFound)
	})
}

func TestStatistics(t *testing.T) {
	repo, mock := newRepo(t)
	to := monday.AddDate(0, 0, 6)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COUNT(*) FILTER (WHERE available), COUNT(*) FILTER (WHERE NOT available) FROM schedules WHERE professional_id = $1 AND date >= $2 AND date <= $3")).
		WithArgs(int64(1), monday, to).
		WillReturnRows(sqlmock.NewRows([]string{"total", "available", "occupied"}).AddRow(10, 7, 3))

	stats, err := repo.Statistics(context.Background(), 1, monday, to)

	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatistics{Total: 10, Available: 7, Occupied: 3}, *stats)
	require.NoError(t, mock.ExpectationsWereMet())
}
