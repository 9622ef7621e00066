package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classboard/internal/api"
	"classboard/internal/applog"
	"classboard/internal/config"
)

func friday() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

func TestRenderHTMLLoaded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"subjects":[{"subject":"Math","group_url":"http://g"}],
			"schedule":[{"day":"пт","time":"08:30","subject":"Math"}],
			"info":[{"key":"message","value":"Hi"}]}`))
	}))
	defer srv.Close()

	var out strings.Builder
	err := renderHTML(context.Background(), &out, api.New(srv.URL, time.Second), time.UTC, friday)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `<div class="name">Math</div>`)
	assert.Contains(t, out.String(), `today-highlight`)
	assert.Contains(t, out.String(), `<div id="infoMessage">Hi</div>`)
}

func TestRenderHTMLFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"boom"}`))
	}))
	defer srv.Close()

	var out strings.Builder
	err := renderHTML(context.Background(), &out, api.New(srv.URL, time.Second), time.UTC, friday)
	require.Error(t, err)
	assert.Equal(t, 3, strings.Count(out.String(), "Ошибка: boom"))
}

func TestRenderHTMLUnconfigured(t *testing.T) {
	var out strings.Builder
	err := renderHTML(context.Background(), &out, api.New("", 0), time.UTC, friday)
	assert.ErrorIs(t, err, api.ErrNotConfigured)
	assert.Contains(t, out.String(), "Укажи endpoint")
}

func TestLocationLogsBadTimezone(t *testing.T) {
	var buf bytes.Buffer
	applog.SetOutput(&buf, slog.LevelInfo)
	t.Cleanup(func() { applog.SetOutput(io.Discard, slog.LevelInfo) })

	assert.Equal(t, time.Local, location(config.Config{Timezone: "Nowhere/Bogus"}))
	assert.Contains(t, buf.String(), "bad timezone")
	assert.Contains(t, buf.String(), `"component":"main"`)

	buf.Reset()
	assert.Equal(t, "UTC", location(config.Config{Timezone: "UTC"}).String())
	assert.Empty(t, buf.String())
}
