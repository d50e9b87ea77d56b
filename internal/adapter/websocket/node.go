package websocket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
)

const channelPrefix = "surface:"

// Channel is the Centrifuge channel carrying a surface's events.
func Channel(surfaceID uuid.UUID) string {
	return channelPrefix + surfaceID.String()
}

// SurfaceLookup tells the node which surface ids may be subscribed to.
type SurfaceLookup interface {
	SurfaceExists(id uuid.UUID) bool
}

// NewNode builds a Centrifuge node whose clients are bound to one surface each.
func NewNode(surfaces SurfaceLookup, wsMetrics *metrics.WebSocketMetrics, logLevel string) (*centrifuge.Node, error) {
	node, err := centrifuge.New(centrifuge.Config{
		Name:       "sentimeter",
		LogLevel:   centrifugeLogLevel(logLevel),
		LogHandler: logToSlog,
	})
	if err != nil {
		return nil, fmt.Errorf("create centrifuge node: %w", err)
	}

	node.OnConnecting(onConnecting(surfaces))
	node.OnConnect(onConnect(wsMetrics))

	return node, nil
}

// onConnecting subscribes the client to its surface channel server-side.
// The surface id arrives as the credential user id.
func onConnecting(surfaces SurfaceLookup) func(ctx context.Context, e centrifuge.ConnectEvent) (centrifuge.ConnectReply, error) {
	return func(ctx context.Context, e centrifuge.ConnectEvent) (centrifuge.ConnectReply, error) {
		cred, ok := centrifuge.GetCredentials(ctx)
		if !ok || cred.UserID == "" {
			return centrifuge.ConnectReply{}, centrifuge.DisconnectServerError
		}

		surfaceID, err := uuid.Parse(cred.UserID)
		if err != nil {
			slog.WarnContext(ctx, "Rejecting websocket with malformed surface id", "surface_id", cred.UserID, "error", err)
			return centrifuge.ConnectReply{}, centrifuge.DisconnectBadRequest
		}

		if !surfaces.SurfaceExists(surfaceID) {
			slog.WarnContext(ctx, "Rejecting websocket for unknown surface", "surface_id", cred.UserID)
			return centrifuge.ConnectReply{}, centrifuge.DisconnectBadRequest
		}

		return centrifuge.ConnectReply{
			Subscriptions: map[string]centrifuge.SubscribeOptions{
				Channel(surfaceID): {EmitPresence: true},
			},
		}, nil
	}
}

func onConnect(wsMetrics *metrics.WebSocketMetrics) func(client *centrifuge.Client) {
	return func(client *centrifuge.Client) {
		slog.Debug("Client connected", "client_id", client.ID(), "surface_id", client.UserID())

		if wsMetrics == nil {
			return
		}
		wsMetrics.ActiveConnections.Inc()
		client.OnDisconnect(func(e centrifuge.DisconnectEvent) {
			wsMetrics.ActiveConnections.Dec()
		})
	}
}
