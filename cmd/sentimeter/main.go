package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/remote"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/app"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/config"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/logging"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/version"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
)

type options struct {
	text          string
	lang          string
	translatorURL string
	sentimentURL  string
	tick          time.Duration
	timeout       time.Duration
	logLevel      string
	showVersion   bool
}

func parseFlags(defaults *config.CLIConfig) options {
	var o options
	flag.StringVar(&o.text, "text", "", "text to analyze")
	flag.StringVar(&o.lang, "lang", "en", "source language code")
	flag.StringVar(&o.translatorURL, "translator", defaults.TranslatorURL, "translation collaborator base URL")
	flag.StringVar(&o.sentimentURL, "sentiment", defaults.SentimentURL, "sentiment collaborator base URL")
	flag.DurationVar(&o.tick, "tick", defaults.AnimationTick, "animation frame interval")
	flag.DurationVar(&o.timeout, "timeout", defaults.RemoteTimeout, "per-request timeout for collaborators")
	flag.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flag.BoolVar(&o.showVersion, "version", false, "print version and exit")
	flag.Parse()
	return o
}

func main() {
	defaults, err := config.LoadCLI()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	opts := parseFlags(defaults)
	if opts.showVersion {
		fmt.Println(version.Get().String())
		return
	}
	if opts.text == "" {
		fmt.Fprintln(os.Stderr, "usage: sentimeter -text <message> [-lang en]")
		os.Exit(2)
	}

	slog.SetDefault(logging.New(os.Stderr, opts.logLevel, "text"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("Analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	remoteOpts := remote.Options{Timeout: opts.timeout}
	orchestrator := app.NewOrchestrator(
		remote.NewTranslationClient(opts.translatorURL, remoteOpts),
		remote.NewSentimentClient(opts.sentimentURL, remoteOpts),
	)

	analysis, err := orchestrator.Run(ctx, domain.UserInput{Text: opts.text, SourceLanguage: opts.lang})
	if err != nil {
		return err
	}

	term := surface.NewTerminal(os.Stdout)
	animator := animation.NewAnimator(clockwork.NewRealClock(), opts.tick, nil)
	presenter := app.NewPresenter(term, animator, sentiment.DefaultSource, nil)
	defer presenter.Close()
	// Interrupts stop the bar where it is.
	stopOnSignal := context.AfterFunc(ctx, presenter.Close)
	defer stopOnSignal()

	if _, _, err := presenter.PresentAndWait(ctx, analysis); err != nil {
		_ = term.Finish()
		return fmt.Errorf("present: %w", err)
	}
	return term.Finish()
}
