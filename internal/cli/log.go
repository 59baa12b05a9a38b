package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Generated 20 questions (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks writes engine, render and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFoldApplied(_ context.Context, fold string, step int) {
	h.logger.Debug("applied fold", "step", step, "fold", fold)
}

func (h logHooks) OnFoldRejected(_ context.Context, fold string, step int, err error) {
	h.logger.Debug("rejected fold", "step", step, "fold", fold, "error", err)
}

func (h logHooks) OnPunch(_ context.Context, point string, cells int) {
	h.logger.Debug("punched", "point", point, "cells", cells)
}

func (h logHooks) OnRenderStart(_ context.Context, format string, step int) {
	h.logger.Debug("rendering", "step", step, "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, step, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "step", step, "format", format, "error", err)
		return
	}
	h.logger.Debug("rendered", "step", step, "format", format, "bytes", size, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "type", keyType, "bytes", size)
}
