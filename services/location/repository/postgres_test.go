package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresRepo(t *testing.T, cfg models.HistoryConfig) (*PostgresHistoryRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	repo := NewPostgresHistoryRepo(sqlx.NewDb(mockDB, "pgx"), cfg)
	repo.now = func() time.Time { return testNow }
	return repo, mock
}

func TestPostgresHistoryRepo_AppendBatch(t *testing.T) {
	repo, mock := newTestPostgresRepo(t, models.HistoryConfig{MaxSamples: 100, RetentionHours: 1})
	samples := []models.LocationSample{
		sampleAt(-2*time.Minute, -6.2),
		sampleAt(-1*time.Minute, -6.1),
	}
	cutoff := testNow.Add(-time.Hour).UnixMilli()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO location_history").
		WillReturnResult(sqlmock.NewResult(2, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM location_history WHERE device_id = $1 AND recorded_at_ms < $2")).
		WithArgs("child-1", cutoff).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM location_history\\s+WHERE device_id = \\$1 AND id NOT IN").
		WithArgs("child-1", int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.AppendBatch(context.Background(), "child-1", samples)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryRepo_RejectsExpiredSamples(t *testing.T) {
	t.Run("only expired samples skip the write", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{RetentionHours: 1})

		err := repo.Append(context.Background(), "child-1", sampleAt(-2*time.Hour, -6.0))
		assert.ErrorIs(t, err, models.ErrSampleExpired)
		assert.ErrorIs(t, err, models.ErrInvalidLocation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh samples are still written", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{RetentionHours: 1})
		cutoff := testNow.Add(-time.Hour).UnixMilli()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO location_history").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM location_history WHERE device_id = $1 AND recorded_at_ms < $2")).
			WithArgs("child-1", cutoff).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.AppendBatch(context.Background(), "child-1", []models.LocationSample{
			sampleAt(-2*time.Hour, -6.0),
			sampleAt(-time.Minute, -6.1),
		})
		assert.ErrorIs(t, err, models.ErrSampleExpired)
		assert.Contains(t, err.Error(), "1 of 2 samples")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresHistoryRepo_AppendUnbounded(t *testing.T) {
	repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO location_history").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Append(context.Background(), "child-1", sampleAt(0, -6.1)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryRepo_AppendRollsBackOnError(t *testing.T) {
	repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO location_history").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), "child-1", sampleAt(0, -6.1))
	assert.ErrorIs(t, err, models.ErrStore)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryRepo_AppendEmptyBatch(t *testing.T) {
	repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

	require.NoError(t, repo.AppendBatch(context.Background(), "child-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresHistoryRepo_List(t *testing.T) {
	columns := []string{"latitude", "longitude", "geohash", "recorded_at_ms"}
	s1 := sampleAt(-2*time.Minute, -6.2)
	s2 := sampleAt(-1*time.Minute, -6.1)

	t.Run("ascending within retention", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{RetentionHours: 1})
		cutoff := testNow.Add(-time.Hour).UnixMilli()

		mock.ExpectQuery("SELECT latitude, longitude, geohash, recorded_at_ms\\s+FROM location_history").
			WithArgs("child-1", cutoff, int64(9223372036854775807)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(s1.Latitude, s1.Longitude, "", s1.TimestampMs).
				AddRow(s2.Latitude, s2.Longitude, "", s2.TimestampMs))

		samples, err := repo.List(context.Background(), "child-1", models.HistoryQuery{})
		require.NoError(t, err)
		assert.Equal(t, []models.LocationSample{s1, s2}, samples)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("limit selects most recent", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

		mock.ExpectQuery("ORDER BY recorded_at_ms DESC, id DESC\\s+LIMIT \\$4").
			WithArgs("child-1", s1.TimestampMs, s2.TimestampMs, 1).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(s2.Latitude, s2.Longitude, "", s2.TimestampMs))

		samples, err := repo.List(context.Background(), "child-1", models.HistoryQuery{
			FromMs: s1.TimestampMs,
			ToMs:   s2.TimestampMs,
			Limit:  1,
		})
		require.NoError(t, err)
		assert.Equal(t, []models.LocationSample{s2}, samples)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows returns empty slice", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

		mock.ExpectQuery("FROM location_history").
			WillReturnRows(sqlmock.NewRows(columns))

		samples, err := repo.List(context.Background(), "child-1", models.HistoryQuery{})
		require.NoError(t, err)
		assert.NotNil(t, samples)
		assert.Empty(t, samples)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newTestPostgresRepo(t, models.HistoryConfig{})

		mock.ExpectQuery("FROM location_history").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.List(context.Background(), "child-1", models.HistoryQuery{})
		assert.ErrorIs(t, err, models.ErrStore)
	})
}
