package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// --- Mock implementations ---

type mockTranslator struct {
	calls       atomic.Int32
	translateFn func(ctx context.Context, input domain.UserInput) (domain.TranslationResult, error)
}

func (m *mockTranslator) Translate(ctx context.Context, input domain.UserInput) (domain.TranslationResult, error) {
	m.calls.Add(1)
	if m.translateFn != nil {
		return m.translateFn(ctx, input)
	}
	return domain.TranslationResult(input.Text), nil
}

type mockScorer struct {
	calls   atomic.Int32
	scoreFn func(ctx context.Context, text domain.TranslationResult) (string, error)
}

func (m *mockScorer) Score(ctx context.Context, text domain.TranslationResult) (string, error) {
	m.calls.Add(1)
	if m.scoreFn != nil {
		return m.scoreFn(ctx, text)
	}
	return "", errors.New("not implemented")
}

func fixedScore(raw string) *mockScorer {
	return &mockScorer{scoreFn: func(context.Context, domain.TranslationResult) (string, error) {
		return raw, nil
	}}
}

// fixedSource always picks the same message index.
type fixedSource struct{ index int }

func (f fixedSource) IntN(n int) int { return f.index % n }

// callLog records the order in which collaborators were called.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// slowSurface delays every block write, like a surface that publishes each
// mutation over the network.
type slowSurface struct {
	domain.Surface
	delay time.Duration
}

func (s *slowSurface) WriteBlock(text string) {
	time.Sleep(s.delay)
	s.Surface.WriteBlock(text)
}
