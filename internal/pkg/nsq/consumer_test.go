package nsq

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newMessage(body string) *nsq.Message {
	var id nsq.MessageID
	copy(id[:], "0123456789abcdef")
	return nsq.NewMessage(id, []byte(body))
}

func TestWrapHandler(t *testing.T) {
	t.Run("success finishes", func(t *testing.T) {
		var got string
		h := wrapHandler("location.report", func(b []byte) error {
			got = string(b)
			return nil
		})

		assert.NoError(t, h(newMessage(`{"deviceId":"child-1"}`)))
		assert.Equal(t, `{"deviceId":"child-1"}`, got)
	})

	t.Run("empty body is skipped", func(t *testing.T) {
		called := false
		h := wrapHandler("location.report", func(b []byte) error {
			called = true
			return nil
		})

		assert.NoError(t, h(newMessage("")))
		assert.False(t, called)
	})

	t.Run("transient error requeues", func(t *testing.T) {
		h := wrapHandler("location.report", func(b []byte) error {
			return errors.New("redis timeout")
		})

		assert.EqualError(t, h(newMessage("{}")), "redis timeout")
	})

	t.Run("poison message is dropped", func(t *testing.T) {
		h := wrapHandler("location.report", func(b []byte) error {
			return fmt.Errorf("%w: bad latitude", ErrPoisonMessage)
		})

		assert.NoError(t, h(newMessage("{}")))
	})
}

func TestUnmarshalMessage(t *testing.T) {
	var v struct {
		DeviceID string `json:"deviceId"`
	}

	require.NoError(t, UnmarshalMessage([]byte(`{"deviceId":"child-1"}`), &v))
	assert.Equal(t, "child-1", v.DeviceID)

	err := UnmarshalMessage([]byte(`{not json`), &v)
	assert.ErrorIs(t, err, ErrPoisonMessage)
}

func TestLogBridge_MapsLevels(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(&buf), zapcore.DebugLevel)
	logger.SetGlobalLogger(&logger.ZapLogger{Logger: zap.New(core)})
	defer logger.SetGlobalLogger(nil)

	bridge := logBridge{component: "nsq-producer"}
	require.NoError(t, bridge.Output(2, "WRN    1 (127.0.0.1:4150) connection closed"))
	require.NoError(t, bridge.Output(2, "ERR    1 (127.0.0.1:4150) IO error"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[0], `"msg":"1 (127.0.0.1:4150) connection closed"`)
	assert.Contains(t, lines[0], `"component":"nsq-producer"`)
	assert.Contains(t, lines[1], `"level":"error"`)
}
