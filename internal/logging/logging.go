// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/config"
)

// New returns a logger writing to out (stderr when nil). An unparsable
// level falls back to info.
func New(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		DisableTimestamp: lvl < logrus.DebugLevel,
	}
	if strings.EqualFold(cfg.Format, "json") {
		formatter = &logrus.JSONFormatter{}
	}

	return &logrus.Logger{
		Out:       out,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}
}

// Verbose raises l to debug level.
func Verbose(l *logrus.Logger) {
	l.SetLevel(logrus.DebugLevel)
	if tf, ok := l.Formatter.(*logrus.TextFormatter); ok {
		tf.DisableTimestamp = false
	}
}
