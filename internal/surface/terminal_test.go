package surface

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_RendersBlocksAndBar(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Clear()
	term.WriteBlock("Sentiment score: 0.8")
	term.WriteBlock("Liking the positive energy!!")
	term.ShowBar()
	term.DrawFrame(domain.Frame{Width: 90, Score: 0.8, Glyph: "😺"})
	require.NoError(t, term.Finish())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Sentiment score: 0.8\nLiking the positive energy!!\n"))
	assert.Contains(t, out, "\r[")
	assert.Contains(t, out, " 90% 0.80 😺")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTerminal_NewBlockEndsBarLine(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.ShowBar()
	term.WriteBlock("next")

	assert.True(t, strings.HasSuffix(buf.String(), "\nnext\n"))
}

func TestTerminal_FinishWithoutBarWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	require.NoError(t, term.Finish())
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTerminal_FinishReportsWriteError(t *testing.T) {
	term := NewTerminal(failingWriter{})
	term.WriteBlock("x")

	assert.EqualError(t, term.Finish(), "broken pipe")
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name   string
		frame  domain.Frame
		filled int
	}{
		{"empty", domain.Frame{Width: 0, Score: -1}, 0},
		{"half", domain.Frame{Width: 50, Score: 0}, 25},
		{"full", domain.Frame{Width: 100, Score: 1}, 50},
		{"overflow clamps", domain.Frame{Width: 150}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderBar(tt.frame)
			assert.Equal(t, tt.filled, strings.Count(bar, "#"))
			assert.Equal(t, barCells-tt.filled, strings.Count(bar, "-")-strings.Count(tt.frame.Label(), "-"))
		})
	}
}
