package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/database"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// RedisHistoryRepo keeps each device's history in a sorted set scored by timestamp
type RedisHistoryRepo struct {
	redisClient *database.RedisClient
	maxSamples  int64
	retention   time.Duration
	now         func() time.Time
}

// NewRedisHistoryRepo creates a Redis backed history repository
func NewRedisHistoryRepo(redisClient *database.RedisClient, cfg models.HistoryConfig) *RedisHistoryRepo {
	return &RedisHistoryRepo{
		redisClient: redisClient,
		maxSamples:  cfg.MaxSamples,
		retention:   cfg.Retention(),
		now:         time.Now,
	}
}

func historyKey(deviceID string) string {
	return fmt.Sprintf(constants.KeyLocationHistory, deviceID)
}

// Append stores one sample
func (r *RedisHistoryRepo) Append(ctx context.Context, deviceID string, sample models.LocationSample) error {
	return r.AppendBatch(ctx, deviceID, []models.LocationSample{sample})
}

// AppendBatch stores samples and trims the set to the retention window and
// count cap in the same transaction. Samples already outside the window are
// not written; the rest are, and ErrSampleExpired reports the skipped ones.
func (r *RedisHistoryRepo) AppendBatch(ctx context.Context, deviceID string, samples []models.LocationSample) error {
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

	members := make([]*redis.Z, 0, len(samples))
	for _, sample := range samples {
		data, err := json.Marshal(sample)
		if err != nil {
			return fmt.Errorf("%w: failed to encode sample: %v", models.ErrStore, err)
		}
		members = append(members, &redis.Z{Score: float64(sample.TimestampMs), Member: data})
	}

	key := historyKey(deviceID)
	pipe := r.redisClient.Client.TxPipeline()
	pipe.ZAdd(ctx, key, members...)

	if r.retention > 0 {
		pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(r.cutoffMs(), 10))
		pipe.Expire(ctx, key, r.retention)
	}
	if r.maxSamples > 0 {
		pipe.ZRemRangeByRank(ctx, key, 0, -(r.maxSamples + 1))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: failed to append location history: %v", models.ErrStore, err)
	}
	return expired
}

// List returns samples in ascending timestamp order
func (r *RedisHistoryRepo) List(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error) {
	from := query.FromMs
	if r.retention > 0 && from < r.cutoffMs() {
		from = r.cutoffMs()
	}

	rangeBy := &redis.ZRangeBy{Min: "-inf", Max: "+inf"}
	if from > 0 {
		rangeBy.Min = strconv.FormatInt(from, 10)
	}
	if query.ToMs > 0 {
		rangeBy.Max = strconv.FormatInt(query.ToMs, 10)
	}

	key := historyKey(deviceID)
	var (
		raw []string
		err error
	)
	if query.Limit > 0 {
		rangeBy.Count = int64(query.Limit)
		raw, err = r.redisClient.Client.ZRevRangeByScore(ctx, key, rangeBy).Result()
		reverse(raw)
	} else {
		raw, err = r.redisClient.Client.ZRangeByScore(ctx, key, rangeBy).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read location history: %v", models.ErrStore, err)
	}

	samples := make([]models.LocationSample, 0, len(raw))
	for _, member := range raw {
		var sample models.LocationSample
		if err := json.Unmarshal([]byte(member), &sample); err != nil {
			return nil, fmt.Errorf("%w: corrupt history entry: %v", models.ErrStore, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func (r *RedisHistoryRepo) cutoffMs() int64 {
	return r.now().Add(-r.retention).UnixMilli()
}

func reverse(items []string) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
