package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinScore = -1.0
	MaxScore = 1.0
)

// Score is a sentiment polarity in [-1, 1].
type Score float64

// ParseScore parses the sentiment collaborator's plain-text response.
// Anything that is not a finite number within [-1, 1] yields ErrMalformedScore.
func ParseScore(raw string) (Score, error) {
	trimmed := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedScore, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrMalformedScore, raw)
	}
	if v < MinScore || v > MaxScore {
		return 0, fmt.Errorf("%w: %q outside [-1, 1]", ErrMalformedScore, raw)
	}
	return Score(v), nil
}

// Bucket is the score-based classification shown as a message.
type Bucket int

const (
	BucketNeutral Bucket = iota
	BucketNegative
	BucketPositive
)

func (b Bucket) String() string {
	switch b {
	case BucketNegative:
		return "negative"
	case BucketPositive:
		return "positive"
	default:
		return "neutral"
	}
}

// EmojiTier is the width-based classification drawn on the bar.
// It is thresholded independently of Bucket.
type EmojiTier int

const (
	TierNone EmojiTier = iota
	TierDiscontent
	TierNeutral
	TierContent
)

// Glyph returns the emoji for the tier; TierNone has no glyph.
func (t EmojiTier) Glyph() string {
	switch t {
	case TierDiscontent:
		return "😒"
	case TierNeutral:
		return "😐"
	case TierContent:
		return "😺"
	default:
		return ""
	}
}

func (t EmojiTier) String() string {
	switch t {
	case TierDiscontent:
		return "discontent"
	case TierNeutral:
		return "neutral"
	case TierContent:
		return "content"
	default:
		return "none"
	}
}
