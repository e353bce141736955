package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// historyRow is a location_history insert
type historyRow struct {
	DeviceID     string  `db:"device_id"`
	Latitude     float64 `db:"latitude"`
	Longitude    float64 `db:"longitude"`
	Geohash      string  `db:"geohash"`
	RecordedAtMs int64   `db:"recorded_at_ms"`
}

// PostgresHistoryRepo stores history in the location_history table
type PostgresHistoryRepo struct {
	db         *sqlx.DB
	maxSamples int64
	retention  time.Duration
	now        func() time.Time
}

// NewPostgresHistoryRepo creates a PostgreSQL backed history repository
func NewPostgresHistoryRepo(db *sqlx.DB, cfg models.HistoryConfig) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{
		db:         db,
		maxSamples: cfg.MaxSamples,
		retention:  cfg.Retention(),
		now:        time.Now,
	}
}

// Append stores one sample
func (r *PostgresHistoryRepo) Append(ctx context.Context, deviceID string, sample models.LocationSample) error {
	return r.AppendBatch(ctx, deviceID, []models.LocationSample{sample})
}

// AppendBatch inserts samples and applies retention in one transaction.
// Samples already outside the window are not inserted; ErrSampleExpired
// reports them after the rest are committed.
func (r *PostgresHistoryRepo) AppendBatch(ctx context.Context, deviceID string, samples []models.LocationSample) error {
	if len(samples) == 0 {
		return nil
	}

	var expired error
	if r.retention > 0 {
		cutoff := r.cutoffMs()
		kept, dropped := splitExpired(samples, cutoff)
		if dropped > 0 {
			expired = expiredError(dropped, len(samples), cutoff)
			if len(kept) == 0 {
				return expired
			}
			samples = kept
		}
	}

	rows := make([]historyRow, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, historyRow{
			DeviceID:     deviceID,
			Latitude:     s.Latitude,
			Longitude:    s.Longitude,
			Geohash:      s.Geohash,
			RecordedAtMs: s.TimestampMs,
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", models.ErrStore, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO location_history (device_id, latitude, longitude, geohash, recorded_at_ms)
		VALUES (:device_id, :latitude, :longitude, :geohash, :recorded_at_ms)
	`
	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("%w: failed to insert location history: %v", models.ErrStore, err)
	}

	if r.retention > 0 {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM location_history WHERE device_id = $1 AND recorded_at_ms < $2`,
			deviceID, r.cutoffMs())
		if err != nil {
			return fmt.Errorf("%w: failed to expire location history: %v", models.ErrStore, err)
		}
	}

	if r.maxSamples > 0 {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM location_history
			WHERE device_id = $1 AND id NOT IN (
				SELECT id FROM location_history
				WHERE device_id = $1
				ORDER BY recorded_at_ms DESC, id DESC
				LIMIT $2
			)`, deviceID, r.maxSamples)
		if err != nil {
			return fmt.Errorf("%w: failed to cap location history: %v", models.ErrStore, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit location history: %v", models.ErrStore, err)
	}
	return expired
}

// List returns samples in ascending timestamp order
func (r *PostgresHistoryRepo) List(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error) {
	from := query.FromMs
	if r.retention > 0 && from < r.cutoffMs() {
		from = r.cutoffMs()
	}
	to := query.ToMs
	if to <= 0 {
		to = math.MaxInt64
	}

	var (
		samples []models.LocationSample
		err     error
	)
	if query.Limit > 0 {
		err = r.db.SelectContext(ctx, &samples, `
			SELECT latitude, longitude, geohash, recorded_at_ms FROM (
				SELECT id, latitude, longitude, geohash, recorded_at_ms
				FROM location_history
				WHERE device_id = $1 AND recorded_at_ms >= $2 AND recorded_at_ms <= $3
				ORDER BY recorded_at_ms DESC, id DESC
				LIMIT $4
			) recent
			ORDER BY recorded_at_ms ASC, id ASC`, deviceID, from, to, query.Limit)
	} else {
		err = r.db.SelectContext(ctx, &samples, `
			SELECT latitude, longitude, geohash, recorded_at_ms
			FROM location_history
			WHERE device_id = $1 AND recorded_at_ms >= $2 AND recorded_at_ms <= $3
			ORDER BY recorded_at_ms ASC, id ASC`, deviceID, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read location history: %v", models.ErrStore, err)
	}

	if samples == nil {
		samples = []models.LocationSample{}
	}
	return samples, nil
}

func (r *PostgresHistoryRepo) cutoffMs() int64 {
	return r.now().Add(-r.retention).UnixMilli()
}
