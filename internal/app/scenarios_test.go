package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/remote"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCollaborators serves /translator (echoing "<lang>:<text>") and
// /sentiment (answering score) the way the remote services do.
func newCollaborators(t *testing.T, score string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+remote.TranslationPath, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data           string `json:"data"`
			SourceLanguage string `json:"sourceLanguage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, "translated:"+req.Data)
	})
	mux.HandleFunc("POST "+remote.SentimentPath, func(w http.ResponseWriter, r *http.Request) {
		var text string
		if err := json.NewDecoder(r.Body).Decode(&text); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, score)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScenarios_EndToEnd(t *testing.T) {
	tests := []struct {
		name       string
		score      string
		bucket     domain.Bucket
		finalWidth int
		finalLabel string
		finalGlyph string
	}{
		{"A positive", "0.8", domain.BucketPositive, 90, "0.80", "😺"},
		{"B neutral", "0.0", domain.BucketNeutral, 50, "0.00", "😐"},
		{"C negative", "-0.9", domain.BucketNegative, 5, "-0.90", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCollaborators(t, tt.score)
			opts := remote.Options{Timeout: 5 * time.Second}
			orch := NewOrchestrator(remote.NewTranslationClient(srv.URL, opts), remote.NewSentimentClient(srv.URL, opts))

			mem := surface.NewMemory()
			p := NewPresenter(mem, animation.NewAnimator(clockwork.NewRealClock(), fastTick, nil), fixedSource{index: 2}, nil)
			defer p.Close()

			analysis, err := orch.Run(context.Background(), domain.UserInput{Text: "hola", SourceLanguage: "es"})
			require.NoError(t, err)

			pres, last, err := p.PresentAndWait(context.Background(), analysis)
			require.NoError(t, err)

			assert.Equal(t, tt.bucket, pres.Classification.Bucket)
			assert.Contains(t, sentiment.MessagesFor(tt.bucket), pres.Classification.Message)
			assert.Equal(t, []string{
				"Sentiment score: " + tt.score,
				pres.Classification.Message,
				"Original Message: hola",
				"Translated Message: translated:hola",
			}, mem.Blocks())

			assert.Equal(t, tt.finalWidth, last.Width)
			assert.Equal(t, tt.finalLabel, last.Label())
			assert.Equal(t, tt.finalGlyph, last.Glyph)
			assert.Len(t, mem.Frames(), tt.finalWidth)
		})
	}
}

func TestScenarios_MalformedScore_NoAnimation(t *testing.T) {
	srv := newCollaborators(t, "not-a-number")
	opts := remote.Options{Timeout: 5 * time.Second}

	registry := NewSurfaceRegistry(RegistryConfig{
		MaxSurfaces:   1,
		IdleTTL:       time.Minute,
		AnimationTick: fastTick,
		Random:        fixedSource{},
	}, clockwork.NewRealClock())
	defer registry.Close()

	svc := NewService(
		NewOrchestrator(remote.NewTranslationClient(srv.URL, opts), remote.NewSentimentClient(srv.URL, opts)),
		registry, []string{"en"}, nil,
	)

	id, err := svc.CreateSurface(context.Background())
	require.NoError(t, err)

	_, err = svc.Analyze(context.Background(), id, domain.UserInput{Text: "hello", SourceLanguage: "en"})
	require.ErrorIs(t, err, domain.ErrMalformedScore)

	snap, err := svc.Snapshot(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, snap.Blocks)
	assert.False(t, snap.BarVisible)
	assert.Nil(t, snap.Frame)
}
