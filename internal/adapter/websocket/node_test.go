package websocket

import (
	"context"
	"testing"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSurfaces map[uuid.UUID]bool

func (s stubSurfaces) SurfaceExists(id uuid.UUID) bool { return s[id] }

func TestOnConnecting_SubscribesToSurfaceChannel(t *testing.T) {
	id := uuid.New()
	handler := onConnecting(stubSurfaces{id: true})

	ctx := centrifuge.SetCredentials(context.Background(), &centrifuge.Credentials{UserID: id.String()})
	reply, err := handler(ctx, centrifuge.ConnectEvent{})
	require.NoError(t, err)

	require.Contains(t, reply.Subscriptions, "surface:"+id.String())
	assert.True(t, reply.Subscriptions["surface:"+id.String()].EmitPresence)
}

func TestOnConnecting_Rejects(t *testing.T) {
	known := uuid.New()
	handler := onConnecting(stubSurfaces{known: true})

	tests := []struct {
		name string
		ctx  context.Context
		want error
	}{
		{"no credentials", context.Background(), centrifuge.DisconnectServerError},
		{"invalid uuid", centrifuge.SetCredentials(context.Background(), &centrifuge.Credentials{UserID: "nope"}), centrifuge.DisconnectBadRequest},
		{"unknown surface", centrifuge.SetCredentials(context.Background(), &centrifuge.Credentials{UserID: uuid.NewString()}), centrifuge.DisconnectBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler(tt.ctx, centrifuge.ConnectEvent{})
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestCentrifugeLogLevel(t *testing.T) {
	assert.Equal(t, centrifuge.LogLevelDebug, centrifugeLogLevel("debug"))
	assert.Equal(t, centrifuge.LogLevelWarn, centrifugeLogLevel("warn"))
	assert.Equal(t, centrifuge.LogLevelError, centrifugeLogLevel("error"))
	assert.Equal(t, centrifuge.LogLevelInfo, centrifugeLogLevel("anything"))
}

func TestChannel(t *testing.T) {
	id := uuid.MustParse("6f1c1c4e-2c1a-4d7e-9b7a-0f2b5d4b9c11")
	assert.Equal(t, "surface:6f1c1c4e-2c1a-4d7e-9b7a-0f2b5d4b9c11", Channel(id))
}
