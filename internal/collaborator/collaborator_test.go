package collaborator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/remote"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedScorer struct {
	score float64
	got   string
}

func (f *fixedScorer) Compound(text string) float64 {
	f.got = text
	return f.score
}

func TestTranslatorIsIdentity(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&fixedScorer{}))
	defer srv.Close()

	client := remote.NewTranslationClient(srv.URL, remote.Options{})
	got, err := client.Translate(context.Background(), domain.UserInput{Text: "hola mundo", SourceLanguage: "es"})

	require.NoError(t, err)
	assert.Equal(t, domain.TranslationResult("hola mundo"), got)
}

func TestSentimentFormatsCompound(t *testing.T) {
	scorer := &fixedScorer{score: 0.80001}
	srv := httptest.NewServer(NewHandler(scorer))
	defer srv.Close()

	client := remote.NewSentimentClient(srv.URL, remote.Options{})
	raw, err := client.Score(context.Background(), "great day")

	require.NoError(t, err)
	assert.Equal(t, "0.8000", raw)
	assert.Equal(t, "great day", scorer.got)

	score, err := domain.ParseScore(raw)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, float64(score), 1e-9)
}

func TestSentimentRejectsNonStringBody(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&fixedScorer{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sentiment", "application/json", strings.NewReader(`{"text":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVaderScorerPolarity(t *testing.T) {
	v := NewVaderScorer()

	assert.Greater(t, v.Compound("I love this, it is wonderful!"), 0.2)
	assert.Less(t, v.Compound("This is terrible and I hate it."), -0.2)
	assert.InDelta(t, 0.0, v.Compound("The table is in the room."), 0.2)
}
