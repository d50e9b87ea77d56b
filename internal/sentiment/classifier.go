package sentiment

import (
	"math"
	"math/rand/v2"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

const (
	negativeThreshold = -0.2
	positiveThreshold = 0.2
)

var messages = map[domain.Bucket][]string{
	domain.BucketPositive: {
		"Liking the positive energy!!",
		"That should make someone smile.",
		"That was nice to hear. Which means 'consume from standard input.' in robot.",
	},
	domain.BucketNeutral: {
		"Congrats, You achieved a neutral response",
		"This text shouldn't ruffle any feathers.",
		"You're like the swiss, Neutral.",
	},
	domain.BucketNegative: {
		"Congrats, this text is sort-of negative. If you meant it.",
		"Sometimes you need to get a somber tone across.",
		"Did you hear about the mathematician that was afraid of negative numbers?\n He'll stop at nothing to avoid them.",
	},
}

// RandomSource picks message indexes. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// DefaultSource draws from the math/rand/v2 global generator, which is safe
// for concurrent use.
var DefaultSource RandomSource = globalSource{}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Classification is the display summary of a score.
type Classification struct {
	Bucket  domain.Bucket
	Message string
	Tier    domain.EmojiTier
}

// Classify buckets the score and picks one of the bucket's messages
// uniformly at random. Tier is the glyph the bar ends on.
func Classify(score domain.Score, rnd RandomSource) Classification {
	bucket := BucketFor(score)
	candidates := messages[bucket]

	return Classification{
		Bucket:  bucket,
		Message: candidates[rnd.IntN(len(candidates))],
		Tier:    TierForWidth(TargetWidth(score)),
	}
}

// BucketFor thresholds the score. Both boundaries belong to Neutral.
func BucketFor(score domain.Score) domain.Bucket {
	switch {
	case score > positiveThreshold:
		return domain.BucketPositive
	case score < negativeThreshold:
		return domain.BucketNegative
	default:
		return domain.BucketNeutral
	}
}

// MessagesFor returns a copy of the candidate messages for a bucket.
func MessagesFor(bucket domain.Bucket) []string {
	out := make([]string, len(messages[bucket]))
	copy(out, messages[bucket])
	return out
}

// TierForWidth picks the bar glyph from the bar width in percent.
func TierForWidth(width int) domain.EmojiTier {
	switch {
	case width <= 10:
		return domain.TierNone
	case width <= 40:
		return domain.TierDiscontent
	case width >= 70:
		return domain.TierContent
	default:
		return domain.TierNeutral
	}
}

// TargetWidth maps a score onto the bar width it should end at:
// round(((score+1)/2)*100), clamped to [0, 100]. Non-finite scores map to 0.
func TargetWidth(score domain.Score) int {
	pct := ((float64(score) + 1) / 2) * 100
	if math.IsNaN(pct) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, pct))))
}
