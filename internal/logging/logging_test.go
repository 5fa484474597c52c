// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/config"
)

func TestNew_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)

	l.Info("hidden")
	l.WithField("format", "pdf").Warn("fallback")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "fallback")
	require.Contains(t, out, "format=pdf")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{Level: "info", Format: "JSON"}, &buf)
	l.WithField("count", 3).Info("export delivered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "export delivered", entry["msg"])
	require.Equal(t, float64(3), entry["count"])
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	l := New(config.LogConfig{Level: "chatty"}, nil)
	require.Equal(t, logrus.InfoLevel, l.GetLevel())

	Verbose(l)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
}
