package nsq

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
	nsqpkg "github.com/piresc/kidtrack/internal/pkg/nsq"
	"github.com/piresc/kidtrack/services/location"
)

const reportMaxInFlight = 32

// NsqHandler consumes device reports from NSQ
type NsqHandler struct {
	locationUC location.LocationUC
	cfg        *models.Config
	consumers  []*nsqpkg.Consumer
}

// NewNsqHandler creates a new NSQ handler
func NewNsqHandler(locationUC location.LocationUC, cfg *models.Config) *NsqHandler {
	return &NsqHandler{
		locationUC: locationUC,
		cfg:        cfg,
	}
}

// InitNSQConsumers subscribes to location.report, through lookupd when configured
func (h *NsqHandler) InitNSQConsumers() error {
	consumer, err := nsqpkg.NewConsumer(
		constants.TopicLocationReport,
		h.cfg.NSQ.Channel,
		reportMaxInFlight,
		h.handleLocationReport,
	)
	if err != nil {
		return fmt.Errorf("failed to create location report consumer: %w", err)
	}

	if len(h.cfg.NSQ.LookupdAddresses) > 0 {
		err = consumer.ConnectToLookupd(h.cfg.NSQ.LookupdAddresses)
	} else {
		err = consumer.ConnectToNSQD(h.cfg.NSQ.NSQDAddress)
	}
	if err != nil {
		consumer.Stop()
		return err
	}

	h.consumers = append(h.consumers, consumer)
	logger.Info("Subscribed to device reports",
		logger.String("topic", constants.TopicLocationReport),
		logger.String("channel", h.cfg.NSQ.Channel))
	return nil
}

// Stop stops every consumer and waits for in-flight messages
func (h *NsqHandler) Stop() {
	for _, consumer := range h.consumers {
		consumer.Stop()
	}
	h.consumers = nil
}

// handleLocationReport applies a device report. Reports that can never
// succeed are dropped instead of requeued.
func (h *NsqHandler) handleLocationReport(msg []byte) error {
	var report models.DeviceReport
	if err := nsqpkg.UnmarshalMessage(msg, &report); err != nil {
		return err
	}

	err := h.locationUC.HandleReport(context.Background(), report)
	if err == nil {
		return nil
	}

	if errors.Is(err, models.ErrInvalidLocation) || errors.Is(err, models.ErrPermissionDenied) {
		return fmt.Errorf("%w: %v", nsqpkg.ErrPoisonMessage, err)
	}
	return fmt.Errorf("failed to handle location report for device %s: %w", report.DeviceID, err)
}
