package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/pkg/retry"
	"github.com/piresc/kidtrack/services/location"
)

const flushTimeout = 10 * time.Second

type pendingSample struct {
	deviceID string
	sample   models.LocationSample
}

// BufferedHistoryRepo queues appends in memory and writes them in batches
// from a single flusher goroutine. Append never blocks: a full queue is
// reported as ErrStoreBackpressure. A batch that cannot be written is held
// as a failure until the next Append, Flush, List or Close reports it.
type BufferedHistoryRepo struct {
	next          location.BatchHistoryRepo
	batchSize     int
	flushInterval time.Duration
	retention     time.Duration
	retrier       *retry.Retrier
	now           func() time.Time

	queue    chan pendingSample
	flushReq chan chan struct{}
	done     chan struct{}
	stopped  chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once

	failMu  sync.Mutex
	failure error
	lost    int
}

// NewBufferedHistoryRepo wraps next and starts the flusher
func NewBufferedHistoryRepo(next location.BatchHistoryRepo, cfg models.HistoryConfig) *BufferedHistoryRepo {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	flushInterval := cfg.FlushInterval()
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	retryCfg := retry.DefaultConfig("history-flush")
	retryCfg.Retryable = func(err error) bool {
		return retry.IsTransient(err) && !errors.Is(err, models.ErrInvalidLocation)
	}

	b := &BufferedHistoryRepo{
		next:          next,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		retention:     cfg.Retention(),
		retrier:       retry.New(retryCfg, nil),
		now:           time.Now,
		queue:         make(chan pendingSample, queueSize),
		flushReq:      make(chan chan struct{}),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	go b.run()
	return b
}

// Append enqueues a sample for the next batch. When an earlier batch was
// lost the failure is returned instead and the sample is not queued.
func (b *BufferedHistoryRepo) Append(ctx context.Context, deviceID string, sample models.LocationSample) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return models.ErrStoreClosed
	}
	if b.retention > 0 {
		if cutoff := b.now().Add(-b.retention).UnixMilli(); sample.TimestampMs < cutoff {
			return expiredError(1, 1, cutoff)
		}
	}
	if err := b.takeFailure(); err != nil {
		return err
	}

	select {
	case b.queue <- pendingSample{deviceID: deviceID, sample: sample}:
		return nil
	default:
		logger.Warn("History write buffer full, dropping sample",
			logger.String("device_id", deviceID),
			logger.Int("queue_size", cap(b.queue)))
		return models.ErrStoreBackpressure
	}
}

// List flushes pending writes and reads from the wrapped repository
func (b *BufferedHistoryRepo) List(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error) {
	if err := b.Flush(ctx); err != nil {
		return nil, err
	}
	return b.next.List(ctx, deviceID, query)
}

// Flush blocks until every sample queued before the call has been written
// and reports any batch that could not be
func (b *BufferedHistoryRepo) Flush(ctx context.Context) error {
	ack := make(chan struct{})

	select {
	case b.flushReq <- ack:
	case <-b.stopped:
		return b.takeFailure()
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-ack:
		return b.takeFailure()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting samples, drains the queue and stops the flusher
func (b *BufferedHistoryRepo) Close(ctx context.Context) error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.done)
	})

	select {
	case <-b.stopped:
		return b.takeFailure()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of queued samples
func (b *BufferedHistoryRepo) Pending() int {
	return len(b.queue)
}

func (b *BufferedHistoryRepo) run() {
	defer close(b.stopped)

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	batch := make([]pendingSample, 0, b.batchSize)
	flush := func() {
		batch = b.drain(batch)
		b.write(batch)
		batch = batch[:0]
	}

	for {
		select {
		case p := <-b.queue:
			batch = append(batch, p)
			if len(batch) >= b.batchSize {
				b.write(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			flush()
		case ack := <-b.flushReq:
			flush()
			close(ack)
		case <-b.done:
			flush()
			return
		}
	}
}

func (b *BufferedHistoryRepo) drain(batch []pendingSample) []pendingSample {
	for {
		select {
		case p := <-b.queue:
			batch = append(batch, p)
		default:
			return batch
		}
	}
}

// write groups the batch per device, keeping arrival order within a device
func (b *BufferedHistoryRepo) write(batch []pendingSample) {
	if len(batch) == 0 {
		return
	}

	order := make([]string, 0)
	grouped := make(map[string][]models.LocationSample)
	for _, p := range batch {
		if _, ok := grouped[p.deviceID]; !ok {
			order = append(order, p.deviceID)
		}
		grouped[p.deviceID] = append(grouped[p.deviceID], p.sample)
	}

	for _, deviceID := range order {
		samples := grouped[deviceID]

		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		err := b.retrier.Execute(ctx, func(ctx context.Context) error {
			return b.next.AppendBatch(ctx, deviceID, samples)
		})
		cancel()

		if err != nil {
			logger.Error("Failed to flush location history",
				logger.String("device_id", deviceID),
				logger.Int("samples", len(samples)),
				logger.Err(err))
			b.recordFailure(len(samples), err)
		}
	}
}

func (b *BufferedHistoryRepo) recordFailure(samples int, err error) {
	b.failMu.Lock()
	defer b.failMu.Unlock()

	b.lost += samples
	b.failure = err
}

// takeFailure returns the pending failure, if any, and clears it
func (b *BufferedHistoryRepo) takeFailure() error {
	b.failMu.Lock()
	defer b.failMu.Unlock()

	if b.failure == nil {
		return nil
	}
	err := fmt.Errorf("%w: %d buffered samples not written: %w", models.ErrStore, b.lost, b.failure)
	b.failure = nil
	b.lost = 0
	return err
}
