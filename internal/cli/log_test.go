package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestLogHooks(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(logHooks)
		want  string
	}{
		{"fold", log.DebugLevel, func(h logHooks) { h.OnFoldApplied(context.Background(), "v:left:1.5", 1) }, "applied fold"},
		{"rejected", log.DebugLevel, func(h logHooks) {
			h.OnFoldRejected(context.Background(), "v:right:2.5", 2, errors.New("off the grid"))
		}, "off the grid"},
		{"punch", log.DebugLevel, func(h logHooks) { h.OnPunch(context.Background(), "(0, 0)", 4) }, "cells=4"},
		{"render", log.DebugLevel, func(h logHooks) {
			h.OnRenderComplete(context.Background(), "svg", 1, 512, time.Millisecond, nil)
		}, "bytes=512"},
		{"cache", log.DebugLevel, func(h logHooks) { h.OnCacheHit(context.Background(), "artifact") }, "cache hit"},
		{"quiet at info", log.InfoLevel, func(h logHooks) { h.OnCacheMiss(context.Background(), "artifact") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(logHooks{newLogger(&buf, tt.level)})
			if tt.want == "" {
				if buf.Len() != 0 {
					t.Errorf("unexpected output: %s", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}
