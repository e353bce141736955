package nsq

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/kidtrack/internal/pkg/models"
	nsqpkg "github.com/piresc/kidtrack/internal/pkg/nsq"
	"github.com/piresc/kidtrack/services/location/mocks"
	"github.com/stretchr/testify/assert"
)

func TestHandleLocationReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockLocationUC(ctrl)
	h := NewNsqHandler(mockUC, &models.Config{})

	t.Run("applies the report", func(t *testing.T) {
		mockUC.EXPECT().HandleReport(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, report models.DeviceReport) error {
				assert.Equal(t, "child-1", report.DeviceID)
				if assert.NotNil(t, report.Sample) {
					assert.Equal(t, -6.2, report.Sample.Latitude)
					assert.Equal(t, int64(1000), report.Sample.TimestampMs)
				}
				return nil
			})

		err := h.handleLocationReport([]byte(`{"device_id":"child-1","sample":{"latitude":-6.2,"longitude":106.8,"timestamp":1000}}`))
		assert.NoError(t, err)
	})

	t.Run("malformed json is poison", func(t *testing.T) {
		err := h.handleLocationReport([]byte(`{not json`))
		assert.ErrorIs(t, err, nsqpkg.ErrPoisonMessage)
	})

	t.Run("invalid sample is poison", func(t *testing.T) {
		mockUC.EXPECT().HandleReport(gomock.Any(), gomock.Any()).Return(models.ErrInvalidLocation)

		err := h.handleLocationReport([]byte(`{"device_id":"child-1","sample":{"latitude":200}}`))
		assert.ErrorIs(t, err, nsqpkg.ErrPoisonMessage)
	})

	t.Run("denied device is poison", func(t *testing.T) {
		mockUC.EXPECT().HandleReport(gomock.Any(), gomock.Any()).Return(models.ErrPermissionDenied)

		err := h.handleLocationReport([]byte(`{"device_id":"child-1","sample":{"latitude":1,"longitude":1,"timestamp":1}}`))
		assert.ErrorIs(t, err, nsqpkg.ErrPoisonMessage)
	})

	t.Run("other errors are requeued", func(t *testing.T) {
		mockUC.EXPECT().HandleReport(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		err := h.handleLocationReport([]byte(`{"device_id":"child-1","error":"gps off"}`))
		assert.Error(t, err)
		assert.False(t, errors.Is(err, nsqpkg.ErrPoisonMessage))
	})
}
