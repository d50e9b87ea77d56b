package domain

import "context"

// UserInput is the raw text and the source language picked in the selector.
type UserInput struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
}

// TranslationResult is the user text translated into the fixed target language.
type TranslationResult string

// Analysis is everything one request produces before rendering.
type Analysis struct {
	Input       UserInput
	Translation TranslationResult
	Score       Score
	// RawScore is the score exactly as the sentiment collaborator sent it.
	RawScore string
}

// Translator calls the translation collaborator.
type Translator interface {
	Translate(ctx context.Context, input UserInput) (TranslationResult, error)
}

// Scorer calls the sentiment collaborator. The score is returned as wire text;
// parsing is up to the caller.
type Scorer interface {
	Score(ctx context.Context, text TranslationResult) (string, error)
}
