package websocket

import (
	"log/slog"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
)

// PresenceChecker counts the websocket clients watching a surface.
type PresenceChecker struct {
	node *centrifuge.Node
}

func NewPresenceChecker(node *centrifuge.Node) *PresenceChecker {
	return &PresenceChecker{node: node}
}

// Subscribers returns 0 when presence cannot be read.
func (p *PresenceChecker) Subscribers(surfaceID uuid.UUID) int {
	stats, err := p.node.PresenceStats(Channel(surfaceID))
	if err != nil {
		slog.Debug("Presence lookup failed", "surface_id", surfaceID, "error", err)
		return 0
	}
	return stats.NumClients
}
