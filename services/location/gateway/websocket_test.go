package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type broadcast struct {
	topic string
	event string
	data  interface{}
}

type fakeBroadcaster struct {
	sent []broadcast
	err  error
}

func (b *fakeBroadcaster) Broadcast(topic, event string, data interface{}) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	b.sent = append(b.sent, broadcast{topic: topic, event: event, data: data})
	return 1, nil
}

func TestLiveGateway_UsesDeviceAsTopic(t *testing.T) {
	b := &fakeBroadcaster{}
	gw := NewLiveGateway(b)

	event := models.SampleEvent{DeviceID: "child-1", Sample: models.LocationSample{TimestampMs: 1000}}
	alert := models.GeofenceAlert{DeviceID: "child-1", Event: models.GeofenceExit}

	require.NoError(t, gw.PublishSample(context.Background(), event))
	require.NoError(t, gw.PublishGeofenceAlert(context.Background(), alert))

	require.Len(t, b.sent, 2)
	assert.Equal(t, broadcast{topic: "child-1", event: constants.EventLocationSample, data: event}, b.sent[0])
	assert.Equal(t, broadcast{topic: "child-1", event: constants.EventGeofenceAlert, data: alert}, b.sent[1])
}

func TestLiveGateway_BroadcastError(t *testing.T) {
	gw := NewLiveGateway(&fakeBroadcaster{err: errors.New("marshal failed")})

	err := gw.PublishSample(context.Background(), models.SampleEvent{DeviceID: "child-1"})
	assert.EqualError(t, err, "marshal failed")
}

func TestMultiGateway_TriesEveryGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockLocationGW(ctrl)
	b := &fakeBroadcaster{}
	gw := NewMultiGateway(failing, nil, NewLiveGateway(b))

	event := models.SampleEvent{DeviceID: "child-1"}
	failing.EXPECT().PublishSample(gomock.Any(), event).Return(errors.New("nsqd down"))

	err := gw.PublishSample(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nsqd down")
	assert.Len(t, b.sent, 1)

	alert := models.GeofenceAlert{DeviceID: "child-1", Event: models.GeofenceEntry}
	failing.EXPECT().PublishGeofenceAlert(gomock.Any(), alert).Return(nil)

	assert.NoError(t, gw.PublishGeofenceAlert(context.Background(), alert))
	assert.Len(t, b.sent, 2)
}
