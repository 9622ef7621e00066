// Package htmlview writes a dashboard board as an HTML fragment using the
// element ids the static page expects.
package htmlview

import (
	"bufio"
	"io"

	"classboard/internal/dashboard"
	"classboard/internal/format"
	"classboard/internal/modal"
)

func Render(w io.Writer, b dashboard.Board) error {
	bw := bufio.NewWriter(w)
	writeSubjects(bw, b.Subjects)
	writeSchedule(bw, b.Schedule)
	writeInfo(bw, b.Info)
	return bw.Flush()
}

func esc(s string) string { return format.EscapeText(s) }

func skeleton(w *bufio.Writer, text string) {
	w.WriteString(`<div class="skeleton">` + esc(text) + `</div>`)
}

func writeSubjects(w *bufio.Writer, p dashboard.SubjectsPane) {
	w.WriteString(`<div id="subjects">`)
	if p.Placeholder != "" {
		skeleton(w, p.Placeholder)
	}
	for _, row := range p.Rows {
		w.WriteString(`<div class="row"><div><div class="name">` + esc(row.Name) + `</div></div><div class="actions">`)
		for _, c := range row.Controls() {
			writeControl(w, c)
		}
		w.WriteString(`</div></div>`)
	}
	w.WriteString("</div>\n")
}

func writeControl(w *bufio.Writer, c dashboard.Control) {
	if c.Disabled {
		w.WriteString(`<button type="button" class="btn" style="opacity:0.55" disabled>` + esc(c.Label) + `</button>`)
		return
	}
	var attr string
	switch content := c.Activate().(type) {
	case modal.HomeworkContent:
		attr = ` data-hw="` + esc(content.Text) + `"`
	case modal.LinkContent:
		attr = ` data-url="` + esc(content.URL) + `"`
	}
	w.WriteString(`<button type="button" class="btn btn-primary"` + attr + `>` + esc(c.Label) + `</button>`)
}

func writeSchedule(w *bufio.Writer, p dashboard.SchedulePane) {
	w.WriteString(`<div id="schedule">`)
	if p.Placeholder != "" {
		skeleton(w, p.Placeholder)
	}
	for _, day := range p.Days {
		class := "day-title"
		if day.Today {
			class += " today-highlight"
		}
		w.WriteString(`<div class="day"><div class="` + class + `">` + esc(day.Label) + `</div>`)
		for _, l := range day.Lessons {
			w.WriteString(`<div class="lesson"><div class="t">` + esc(l.Time) + `</div><div><div class="s">` +
				esc(l.Subject) + `</div><div class="meta">` + esc(l.Meta) + `</div></div></div>`)
		}
		w.WriteString(`</div>`)
	}
	w.WriteString("</div>\n")
}

func writeInfo(w *bufio.Writer, p dashboard.InfoPane) {
	w.WriteString(`<div id="infoUpdated">` + esc(p.Updated) + "</div>\n")
	w.WriteString(`<div id="infoMessage">` + esc(p.Message) + "</div>\n")
}
