package domain

import "strconv"

// Frame is one step of the bar animation.
type Frame struct {
	Width int     `json:"width"` // percent, 0-100
	Score float64 `json:"score"`
	Glyph string  `json:"glyph"`
}

// Label renders the frame's score counter the way the bar shows it.
func (f Frame) Label() string {
	return strconv.FormatFloat(f.Score, 'f', 2, 64)
}

// Surface is a display region: a text area that is cleared and rewritten
// per request, and a bar that is shown and then redrawn per frame.
type Surface interface {
	Clear()
	WriteBlock(text string)
	ShowBar()
	DrawFrame(frame Frame)
}
