package provider

import (
	"errors"
	"fmt"
	"sync"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

var errSourceClosed = errors.New("source stream closed")

// subscription runs one watch: it reads the source, throttles and invokes the callbacks
type subscription struct {
	release func()

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newSubscription(release func()) *subscription {
	return &subscription{
		release: release,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Cancel stops delivery and detaches from the source. Idempotent.
func (s *subscription) Cancel() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.release()
	})
}

// Done is closed when the delivery goroutine has exited
func (s *subscription) Done() <-chan struct{} {
	return s.done
}

func (s *subscription) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *subscription) run(
	samples <-chan models.LocationSample,
	errs <-chan error,
	throttle *Throttle,
	onSample func(models.LocationSample),
	onError func(error),
) {
	defer close(s.done)

	for {
		select {
		case <-s.stop:
			return

		case sample, ok := <-samples:
			if !ok {
				s.fail(errSourceClosed, onError)
				return
			}
			if !throttle.Admit(sample) {
				continue
			}
			if s.stopped() {
				return
			}
			onSample(sample)

		case err, ok := <-errs:
			if !ok {
				err = errSourceClosed
			}
			s.drain(samples, throttle, onSample)
			s.fail(err, onError)
			return
		}
	}
}

// drain delivers the samples the source queued before it failed
func (s *subscription) drain(
	samples <-chan models.LocationSample,
	throttle *Throttle,
	onSample func(models.LocationSample),
) {
	for {
		select {
		case sample, ok := <-samples:
			if !ok {
				return
			}
			if s.stopped() {
				return
			}
			if throttle.Admit(sample) {
				onSample(sample)
			}
		default:
			return
		}
	}
}

// fail ends the watch and reports err unless the watch was already cancelled
func (s *subscription) fail(err error, onError func(error)) {
	if s.stopped() {
		return
	}
	s.Cancel()

	if onError != nil {
		onError(fmt.Errorf("%w: %w", models.ErrSubscription, err))
	}
}
