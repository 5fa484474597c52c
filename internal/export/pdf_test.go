// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeBrowserEnv switches the test binary into a stand-in for Chrome.
const fakeBrowserEnv = "SPARKEXPORT_FAKE_BROWSER"

func TestMain(m *testing.M) {
	switch os.Getenv(fakeBrowserEnv) {
	case "":
		os.Exit(m.Run())
	case "refuse":
		serveBrokenDevTools()
	default:
		// Never announce a DevTools endpoint.
		time.Sleep(time.Hour)
	}
	os.Exit(0)
}

// serveBrokenDevTools announces a DevTools endpoint that answers
// /json/version but rejects the websocket upgrade.
func serveBrokenDevTools() {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		os.Exit(1)
	}
	ws := "ws://" + ln.Addr().String() + "/devtools/browser/fake"

	mux := http.NewServeMux()
	mux.HandleFunc("/json/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"Browser": "FakeChrome/1.0", "webSocketDebuggerUrl": %q}`, ws)
	})

	line := fmt.Sprintf("\nDevTools listening on %s\n", ws)
	fmt.Fprint(os.Stderr, line)
	fmt.Fprint(os.Stdout, line)
	_ = http.Serve(ln, mux)
}

// fakeBrowser writes an executable that re-runs this test binary as a
// browser in the given mode.
func fakeBrowser(t *testing.T, mode string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake browser script needs a POSIX shell")
	}
	exe, err := os.Executable()
	require.NoError(t, err)

	script := fmt.Sprintf("#!/bin/sh\n%s=%s exec '%s' \"$@\"\n", fakeBrowserEnv, mode, exe)
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// renderWithin runs r.Render and fails the test if it does not return in time.
func renderWithin(t *testing.T, r *PDFRenderer, limit time.Duration) error {
	t.Helper()
	doc := NewDocument(GroupBy(scenarioQuestions(), GroupNone), &Options{}, exportedAt)

	done := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), doc)
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(limit):
		t.Fatalf("Render still running %s after start", limit)
		return nil
	}
}

func TestPDFRenderer_ConnectFailureReleasesBrowser(t *testing.T) {
	r := NewPDFRenderer(PDFConfig{BrowserBin: fakeBrowser(t, "refuse"), Timeout: 2 * time.Second}, nil)

	err := renderWithin(t, r, 15*time.Second)
	require.ErrorIs(t, err, ErrPDFConversion)
}

func TestPDFRenderer_LaunchTimeout(t *testing.T) {
	r := NewPDFRenderer(PDFConfig{BrowserBin: fakeBrowser(t, "silent"), Timeout: time.Second}, nil)

	err := renderWithin(t, r, 15*time.Second)
	require.ErrorIs(t, err, ErrPDFConversion)
	require.Contains(t, err.Error(), "launch browser")
}

func TestRun_BrokenBrowserFallsBackToPrintPage(t *testing.T) {
	p := DefaultProvider(PDFConfig{BrowserBin: fakeBrowser(t, "refuse"), Timeout: 2 * time.Second}, nil)
	sink := &MemorySink{}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := testExporter(sink, WithProvider(p)).
			Run(context.Background(), scenarioQuestions(), &Options{Format: FormatPDF})
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		require.NoError(t, o.err)
		require.True(t, o.res.Fallback)
		require.True(t, strings.HasSuffix(o.res.Artifact.Name, ".html"))
		require.Contains(t, string(o.res.Artifact.Data), "window.print()")
		require.Equal(t, []string{o.res.Location}, sink.Opened)
	case <-time.After(15 * time.Second):
		t.Fatal("export did not fall back after the browser failed")
	}
}

func TestRun_PrintFallbackOpensOnce(t *testing.T) {
	p := NewProvider()
	p.Register(FormatHTML, func() (Renderer, error) { return NewHTMLRenderer(nil), nil })
	p.Register(FormatPDF, func() (Renderer, error) { return failingRenderer{}, nil })

	var opened []string
	sink := NewDirSink(t.TempDir(), true)
	sink.open = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	res, err := testExporter(sink, WithProvider(p)).
		Run(context.Background(), scenarioQuestions(), &Options{Format: FormatPDF})
	require.NoError(t, err)
	require.True(t, res.Fallback)
	require.Equal(t, []string{res.Location}, opened)
}
