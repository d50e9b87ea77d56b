package websocket

import (
	"encoding/json"
	"log/slog"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// Event types pushed on a surface channel.
const (
	EventClear   = "clear"
	EventBlock   = "block"
	EventShowBar = "show_bar"
	EventFrame   = "frame"
)

// Event is the JSON payload of one surface mutation.
type Event struct {
	Type  string        `json:"type"`
	Text  string        `json:"text,omitempty"`
	Frame *domain.Frame `json:"frame,omitempty"`
	Label string        `json:"label,omitempty"`
}

// publisher is the part of *centrifuge.Node the surface needs.
type publisher interface {
	Publish(channel string, data []byte, opts ...centrifuge.PublishOption) (centrifuge.PublishResult, error)
}

// SurfacePublisher applies every mutation to an inner surface and pushes it
// to the surface's channel. Publish failures are logged and counted; the
// inner surface is always updated.
type SurfacePublisher struct {
	inner     domain.Surface
	node      publisher
	channel   string
	wsMetrics *metrics.WebSocketMetrics
}

var _ domain.Surface = (*SurfacePublisher)(nil)

func NewSurfacePublisher(node publisher, surfaceID uuid.UUID, inner domain.Surface, wsMetrics *metrics.WebSocketMetrics) *SurfacePublisher {
	return &SurfacePublisher{
		inner:     inner,
		node:      node,
		channel:   Channel(surfaceID),
		wsMetrics: wsMetrics,
	}
}

func (p *SurfacePublisher) Clear() {
	p.inner.Clear()
	p.publish(Event{Type: EventClear})
}

func (p *SurfacePublisher) WriteBlock(text string) {
	p.inner.WriteBlock(text)
	p.publish(Event{Type: EventBlock, Text: text})
}

func (p *SurfacePublisher) ShowBar() {
	p.inner.ShowBar()
	p.publish(Event{Type: EventShowBar})
}

func (p *SurfacePublisher) DrawFrame(frame domain.Frame) {
	p.inner.DrawFrame(frame)
	p.publish(Event{Type: EventFrame, Frame: &frame, Label: frame.Label()})
}

func (p *SurfacePublisher) publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("Failed to marshal surface event", "channel", p.channel, "type", ev.Type, "error", err)
		p.countFailure()
		return
	}

	if _, err := p.node.Publish(p.channel, data); err != nil {
		slog.Warn("Failed to publish surface event", "channel", p.channel, "type", ev.Type, "error", err)
		p.countFailure()
		return
	}

	if p.wsMetrics != nil {
		p.wsMetrics.EventsPublished.WithLabelValues(ev.Type).Inc()
	}
}

func (p *SurfacePublisher) countFailure() {
	if p.wsMetrics != nil {
		p.wsMetrics.PublishFailures.Inc()
	}
}
