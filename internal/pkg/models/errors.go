package models

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrSubscription        = errors.New("location subscription failed")
	ErrSessionActive       = errors.New("tracking session already active")
	ErrInvalidLocation     = errors.New("invalid location")
	ErrInvalidQuery        = errors.New("invalid history query")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrSampleExpired       = fmt.Errorf("%w: sample is older than the retention window", ErrInvalidLocation)

	ErrStore             = errors.New("history store error")
	ErrStoreBackpressure = fmt.Errorf("%w: write buffer full", ErrStore)
	ErrStoreClosed       = fmt.Errorf("%w: store closed", ErrStore)

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidSettings    = errors.New("invalid settings")
)
