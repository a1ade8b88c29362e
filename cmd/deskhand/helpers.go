package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shahar-caura/deskhand/internal/assistant"
	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/config"
	"github.com/shahar-caura/deskhand/internal/history"
	"github.com/shahar-caura/deskhand/internal/intent"
	"github.com/shahar-caura/deskhand/internal/metrics"
	"github.com/shahar-caura/deskhand/internal/provider/audio"
	"github.com/shahar-caura/deskhand/internal/provider/capture"
	"github.com/shahar-caura/deskhand/internal/provider/display"
	"github.com/shahar-caura/deskhand/internal/provider/llm"
	"github.com/shahar-caura/deskhand/internal/provider/process"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
	"github.com/shahar-caura/deskhand/internal/provider/web"
)

// errOutcomeFailed marks a handled utterance whose outcome was Failed.
var errOutcomeFailed = errors.New("outcome failed")

// loadConfig loads env files and the config, and points the history journal
// at the configured directory.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	config.LoadEnvFiles()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	history.SetDir(cfg.History.Dir)
	return cfg, nil
}

// wireAssistant builds the assistant with every backend from cfg. reg, when
// non-nil, receives the Prometheus metrics.
func wireAssistant(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) (*assistant.Assistant, error) {
	runner := shell.New(logger)

	lang, err := llm.NewProvider(ctx, languageConfig(cfg.Language), runner, logger)
	if err != nil {
		return nil, fmt.Errorf("language backend: %w", err)
	}

	var observers []assistant.Observer
	if cfg.History.IsEnabled() {
		observers = append(observers, history.NewRecorder(logger))
	}
	if reg != nil {
		observers = append(observers, metrics.NewRecorder(reg))
	}

	return assistant.New(
		intent.Classifier{WordBoundary: cfg.Actions.WordBoundary},
		assistant.NewDispatcher(newBackends(cfg.Actions, runtime.GOOS, runner, logger), cfg.Actions.Timeout.Duration, logger),
		assistant.NewFallbackRouter(lang, cfg.Language.Timeout.Duration, logger),
		logger,
		observers...,
	), nil
}

func newBackends(cfg config.ActionsConfig, goos string, runner *shell.Runner, logger *slog.Logger) assistant.Backends {
	return assistant.Backends{
		command.CategoryWeb:     web.New(goos, cfg.Web.Open, runner, logger),
		command.CategoryCapture: capture.New(goos, cfg.Capture.Command, cfg.ScreenshotDir, runner, logger),
		command.CategoryProcess: process.New(goos, cfg.Process.Word, runner, logger),
		command.CategoryDisplay: display.New(goos, display.Commands{
			Get: cfg.Display.Get,
			Set: cfg.Display.Set,
		}, runner, logger),
		command.CategoryAudio: audio.New(goos, audio.Commands{
			Get:    cfg.Audio.Get,
			Set:    cfg.Audio.Set,
			Mute:   cfg.Audio.Mute,
			Unmute: cfg.Audio.Unmute,
		}, runner, logger),
	}
}

func languageConfig(c config.LanguageConfig) llm.Config {
	return llm.Config{
		Provider:     c.Provider,
		Model:        c.Model,
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		Command:      c.Command,
		SystemPrompt: c.SystemPrompt,
		Timeout:      c.Timeout.Duration,
		RateLimit:    c.RateLimit,
		Burst:        c.Burst,
		CacheTTL:     c.CacheTTL.Duration,
	}
}

// printOutcome writes the outcome message and reports failure as errOutcomeFailed.
func printOutcome(w io.Writer, out assistant.Outcome) error {
	fmt.Fprintln(w, out.Message)
	if !out.OK() {
		return errOutcomeFailed
	}
	return nil
}
