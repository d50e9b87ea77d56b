// Package collaborator is a local stand-in for the translation and sentiment
// services. Translation is the identity and scoring uses the VADER lexicon.
package collaborator

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonreiter/govader"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const bodyLimit = "64K"

type translationRequest struct {
	Data           string `json:"data"`
	SourceLanguage string `json:"sourceLanguage"`
}

// Scorer returns a compound polarity in [-1, 1].
type Scorer interface {
	Compound(text string) float64
}

// VaderScorer scores text with govader.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// NewHandler serves POST /translator and POST /sentiment.
func NewHandler(scorer Scorer) http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))

	e.POST("/translator", handleTranslate)
	e.POST("/sentiment", func(c echo.Context) error {
		return handleSentiment(c, scorer)
	})
	return e
}

func handleTranslate(c echo.Context) error {
	var req translationRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	slog.InfoContext(c.Request().Context(), "Translating", "source_language", req.SourceLanguage, "length", len(req.Data))
	return c.String(http.StatusOK, req.Data)
}

func handleSentiment(c echo.Context, scorer Scorer) error {
	var text string
	if err := c.Bind(&text); err != nil {
		return err
	}
	score := scorer.Compound(text)
	slog.DebugContext(c.Request().Context(), "Scored", "compound", score)
	return c.String(http.StatusOK, fmt.Sprintf("%.4f", score))
}
