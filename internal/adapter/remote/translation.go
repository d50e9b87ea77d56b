package remote

import (
	"context"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// TranslationPath is the translation collaborator's endpoint.
const TranslationPath = "/translator"

type translationRequest struct {
	Data           string `json:"data"`
	SourceLanguage string `json:"sourceLanguage"`
}

// TranslationClient calls POST /translator.
type TranslationClient struct {
	c *client
}

var _ domain.Translator = (*TranslationClient)(nil)

func NewTranslationClient(baseURL string, opts Options) *TranslationClient {
	return &TranslationClient{c: newClient("translator", baseURL, TranslationPath, opts)}
}

// Translate sends {data, sourceLanguage} and returns the response body verbatim.
func (t *TranslationClient) Translate(ctx context.Context, input domain.UserInput) (domain.TranslationResult, error) {
	body, err := t.c.post(ctx, translationRequest{Data: input.Text, SourceLanguage: input.SourceLanguage})
	if err != nil {
		return "", err
	}
	return domain.TranslationResult(body), nil
}
