package surface

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

const barCells = 50

// Terminal renders a surface as plain lines on a writer and redraws the bar
// in place with a carriage return.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	drawing bool
	err     error
}

var _ domain.Surface = (*Terminal)(nil)

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLine()
}

func (t *Terminal) WriteBlock(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLine()
	t.printf("%s\n", text)
}

func (t *Terminal) ShowBar() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLine()
	t.printf("%s", renderBar(domain.Frame{Score: -1}))
	t.drawing = true
}

func (t *Terminal) DrawFrame(frame domain.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\r%s", renderBar(frame))
	t.drawing = true
}

// Finish terminates the bar line. It returns the first write error seen.
func (t *Terminal) Finish() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLine()
	return t.err
}

func (t *Terminal) endLine() {
	if t.drawing {
		t.printf("\n")
		t.drawing = false
	}
}

func (t *Terminal) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func renderBar(frame domain.Frame) string {
	filled := min(max(frame.Width*barCells/100, 0), barCells)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barCells-filled)
	line := fmt.Sprintf("[%s] %3d%% %s", bar, frame.Width, frame.Label())
	if frame.Glyph != "" {
		line += " " + frame.Glyph
	}
	// Pad so a shorter redraw fully overwrites the previous one.
	return line + "  "
}
