package remote

import (
	"context"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// SentimentPath is the sentiment collaborator's endpoint.
const SentimentPath = "/sentiment"

// SentimentClient calls POST /sentiment.
type SentimentClient struct {
	c *client
}

var _ domain.Scorer = (*SentimentClient)(nil)

func NewSentimentClient(baseURL string, opts Options) *SentimentClient {
	return &SentimentClient{c: newClient("sentiment", baseURL, SentimentPath, opts)}
}

// Score sends the text as a bare JSON string and returns the score text unparsed.
func (s *SentimentClient) Score(ctx context.Context, text domain.TranslationResult) (string, error) {
	return s.c.post(ctx, string(text))
}
