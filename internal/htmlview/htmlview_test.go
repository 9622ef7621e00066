package htmlview

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classboard/internal/api"
	"classboard/internal/dashboard"
)

func render(t *testing.T, b dashboard.Board) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Render(&sb, b))
	return sb.String()
}

func TestRenderLoadedBoard(t *testing.T) {
	board := dashboard.Build(api.Payload{
		Subjects: []api.Subject{{Subject: "Math <b>", HomeWork: `read "ch. 2"`, GroupURL: "http://g?a=1&b=2"}},
		Schedule: []api.Lesson{{Day: "пн", Time: "9:00", Subject: "Math", Room: "1"}},
		Info:     []api.InfoEntry{{Key: "message", Value: "line1\nline2"}},
	}, "пн", time.UTC)

	out := render(t, board)
	assert.Contains(t, out, `<div class="name">Math &lt;b&gt;</div>`)
	assert.Contains(t, out, `data-hw="read &quot;ch. 2&quot;"`)
	assert.Contains(t, out, `data-url="http://g?a=1&amp;b=2"`)
	assert.Contains(t, out, `style="opacity:0.55" disabled>Для автомата (нет)</button>`)
	assert.Contains(t, out, `<div class="day-title today-highlight">пн</div>`)
	assert.Contains(t, out, `<div class="meta">ауд. 1</div>`)
	assert.Contains(t, out, "<div id=\"infoMessage\">line1\nline2</div>")
	assert.Contains(t, out, `<div id="infoUpdated"></div>`)
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, "<br>")
}

func TestRenderFailedBoard(t *testing.T) {
	out := render(t, dashboard.Failed(&api.APIError{Message: "<boom>"}))
	assert.Equal(t, 3, strings.Count(out, "Ошибка: &lt;boom&gt;"))
	assert.Contains(t, out, `<div id="subjects"><div class="skeleton">Ошибка: &lt;boom&gt;</div></div>`)
}
