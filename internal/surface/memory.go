package surface

import (
	"slices"
	"sync"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// Snapshot is the current content of a surface.
type Snapshot struct {
	Blocks     []string      `json:"blocks"`
	BarVisible bool          `json:"bar_visible"`
	Frame      *domain.Frame `json:"frame,omitempty"`
}

// Memory keeps the surface state in memory. Safe for concurrent use; frames
// arrive from the animation goroutine.
type Memory struct {
	mu         sync.RWMutex
	blocks     []string
	barVisible bool
	frames     []domain.Frame
}

var _ domain.Surface = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

// Clear drops the text blocks and the frame history. The bar stays visible
// once shown.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = nil
	m.frames = nil
}

func (m *Memory) WriteBlock(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = append(m.blocks, text)
}

func (m *Memory) ShowBar() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.barVisible = true
}

func (m *Memory) DrawFrame(frame domain.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, frame)
}

// Blocks returns a copy of the text blocks in write order.
func (m *Memory) Blocks() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.blocks)
}

// Frames returns a copy of the frames drawn since the last Clear.
func (m *Memory) Frames() []domain.Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.frames)
}

// Snapshot returns the blocks, bar visibility and the latest frame.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Blocks:     slices.Clone(m.blocks),
		BarVisible: m.barVisible,
	}
	if snap.Blocks == nil {
		snap.Blocks = []string{}
	}
	if n := len(m.frames); n > 0 {
		last := m.frames[n-1]
		snap.Frame = &last
	}
	return snap
}
