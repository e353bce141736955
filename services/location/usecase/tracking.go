package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/pkg/requestcontext"
	"github.com/piresc/kidtrack/services/location"
	"github.com/piresc/kidtrack/services/location/provider"
	"github.com/piresc/kidtrack/services/location/tracking"
)

// StartTracking starts a session for deviceID using guardianID's settings.
// A device already being tracked returns ErrSessionActive.
func (uc *LocationUC) StartTracking(ctx context.Context, deviceID, guardianID string) (models.SessionStatus, error) {
	opts, fence, hasFence := uc.watchOptions(ctx, guardianID)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if current, ok := uc.sessions[deviceID]; ok && current.session.State() == models.SessionActive {
		return current.session.Status(), models.ErrSessionActive
	}

	var onSample func(string, models.LocationSample)
	if hasFence {
		onSample = func(sessionID string, sample models.LocationSample) {
			uc.onSample(deviceID, sessionID, sample)
			uc.checkGeofence(deviceID, guardianID, fence, sample)
		}
	} else {
		onSample = func(sessionID string, sample models.LocationSample) {
			uc.onSample(deviceID, sessionID, sample)
		}
	}

	session := tracking.NewSession(
		deviceID,
		provider.NewProvider(uc.registry.Get(deviceID)),
		uc.history,
		opts,
		tracking.WithSampleHook(onSample),
		tracking.WithErrorHook(func(sessionID string, err error) {
			uc.onError(deviceID, sessionID, err)
		}),
	)
	uc.sessions[deviceID] = &trackedDevice{session: session, guardianID: guardianID}
	uc.geofence.Reset(deviceID)

	if err := session.Start(ctx); err != nil {
		logger.Warn("Failed to start tracking",
			append(requestcontext.LogFields(ctx),
				logger.String("device_id", deviceID),
				logger.String("guardian_id", guardianID),
				logger.Err(err))...)
		return session.Status(), err
	}

	status := session.Status()
	logger.Info("Tracking started",
		append(requestcontext.LogFields(ctx),
			logger.String("device_id", deviceID),
			logger.String("guardian_id", guardianID),
			logger.String("session_id", status.SessionID),
			logger.Duration("interval", opts.Interval),
			logger.Float64("min_distance_meters", opts.MinDistanceMeters),
			logger.Bool("geofence", hasFence))...)
	return status, nil
}

// StopTracking stops the device's session. Stopping an untracked device is a no-op.
// It returns once no sample of the stopped session can still be recorded.
func (uc *LocationUC) StopTracking(ctx context.Context, deviceID string) (models.SessionStatus, error) {
	uc.mu.Lock()
	current, ok := uc.sessions[deviceID]
	if !ok {
		uc.mu.Unlock()
		return idleStatus(deviceID), nil
	}

	wasActive := current.session.State() == models.SessionActive
	current.session.Stop()
	uc.geofence.Reset(deviceID)
	uc.mu.Unlock()

	if err := current.session.Wait(ctx); err != nil {
		return current.session.Status(), err
	}

	if wasActive {
		logger.Info("Tracking stopped",
			append(requestcontext.LogFields(ctx), logger.String("device_id", deviceID))...)
	}
	return current.session.Status(), nil
}

// SessionStatus returns the device's session snapshot
func (uc *LocationUC) SessionStatus(ctx context.Context, deviceID string) (models.SessionStatus, error) {
	uc.mu.Lock()
	current, ok := uc.sessions[deviceID]
	uc.mu.Unlock()

	if !ok {
		return idleStatus(deviceID), nil
	}
	return current.session.Status(), nil
}

// Shutdown stops every active session and waits for their last samples
// to be recorded, so the history store can be closed afterwards
func (uc *LocationUC) Shutdown(ctx context.Context) error {
	uc.mu.Lock()
	sessions := make([]*tracking.Session, 0, len(uc.sessions))
	stopped := 0
	for deviceID, current := range uc.sessions {
		if current.session.State() == models.SessionActive {
			current.session.Stop()
			stopped++
		}
		uc.geofence.Reset(deviceID)
		sessions = append(sessions, current.session)
	}
	uc.mu.Unlock()

	for _, session := range sessions {
		if err := session.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for tracking sessions: %w", err)
		}
	}

	logger.Info("Stopped tracking sessions", logger.Int("count", stopped))
	return nil
}

// watchOptions resolves the guardian's watch thresholds and geofence. The
// configured interval applies until the guardian has saved settings.
func (uc *LocationUC) watchOptions(ctx context.Context, guardianID string) (location.WatchOptions, Fence, bool) {
	opts := location.WatchOptions{
		Interval:          uc.cfg.Tracking.Interval(),
		MinDistanceMeters: uc.cfg.Tracking.MinDistanceMeters,
	}
	if uc.settings == nil || guardianID == "" {
		return opts, Fence{}, false
	}

	settings, err := uc.settings.GetSettings(ctx, guardianID)
	if err != nil {
		logger.Warn("Failed to load guardian settings, using defaults",
			logger.String("guardian_id", guardianID),
			logger.Err(err))
		return opts, Fence{}, false
	}

	if settings.Saved() {
		if interval, err := settings.TrackingInterval(); err == nil && interval > 0 {
			opts.Interval = interval
		}
	}

	fence, ok := FenceFromSettings(settings)
	return opts, fence, ok
}

func (uc *LocationUC) onSample(deviceID, sessionID string, sample models.LocationSample) {
	if uc.gateway == nil {
		return
	}

	event := models.SampleEvent{
		DeviceID:    deviceID,
		SessionID:   sessionID,
		Sample:      sample,
		PublishedAt: time.Now().UTC(),
	}
	// publish failures do not affect recording
	_ = uc.gateway.PublishSample(context.Background(), event)
}

func (uc *LocationUC) checkGeofence(deviceID, guardianID string, fence Fence, sample models.LocationSample) {
	alert := uc.geofence.Evaluate(deviceID, guardianID, fence, sample)
	if alert == nil {
		return
	}

	logger.Info("Geofence boundary crossed",
		logger.String("device_id", deviceID),
		logger.String("event", string(alert.Event)),
		logger.Float64("distance_meters", alert.DistanceMeters),
		logger.Bool("emergency", alert.EmergencyAlert))

	if uc.gateway != nil {
		_ = uc.gateway.PublishGeofenceAlert(context.Background(), *alert)
	}
}

func (uc *LocationUC) onError(deviceID, sessionID string, err error) {
	if errors.Is(err, models.ErrStore) || errors.Is(err, models.ErrInvalidLocation) {
		logger.Warn("Failed to record location sample",
			logger.String("device_id", deviceID),
			logger.String("session_id", sessionID),
			logger.Err(err))
		return
	}

	uc.geofence.Reset(deviceID)
	logger.Error("Tracking session ended by provider error",
		logger.String("device_id", deviceID),
		logger.String("session_id", sessionID),
		logger.Err(err))
}

func idleStatus(deviceID string) models.SessionStatus {
	return models.SessionStatus{DeviceID: deviceID, State: models.SessionIdle}
}
