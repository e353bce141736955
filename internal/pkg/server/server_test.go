package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func nopLogger() *logger.ZapLogger {
	return &logger.ZapLogger{Logger: zap.NewNop()}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestGracefulServer_RunAndShutdown(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, nopLogger(), "127.0.0.1", freePort(t), time.Second)

	var order []string
	gs.OnShutdown(func(ctx context.Context) error {
		order = append(order, "history")
		return nil
	})
	gs.OnShutdown(func(ctx context.Context) error {
		order = append(order, "sessions")
		return errors.New("already stopped")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + gs.addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Equal(t, []string{"sessions", "history"}, order)
}

func TestGracefulServer_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	gs := NewGracefulServer(e, nopLogger(), "127.0.0.1", port, time.Second)

	cleaned := false
	gs.OnShutdown(func(ctx context.Context) error {
		cleaned = true
		return nil
	})

	err = gs.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, cleaned)
}

func TestShutdownManager_ReturnsFirstError(t *testing.T) {
	sm := NewShutdownManager(nopLogger())
	sm.Register(func(ctx context.Context) error { return errors.New("first registered") })
	sm.Register(func(ctx context.Context) error { return errors.New("last registered") })

	err := sm.Shutdown(context.Background())
	assert.EqualError(t, err, "last registered")

	assert.NoError(t, sm.Shutdown(context.Background()))
}
