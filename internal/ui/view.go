package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classboard/internal/config"
	"classboard/internal/dashboard"
	"classboard/internal/format"
)

// chromeLines is the header, blank, status and help rows around the viewport.
const chromeLines = 5

func (m Model) View() string {
	if m.state.Modal.Visible() && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	if m.state.Modal.Visible() {
		return m.renderModal()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	s := m.styles
	now := m.state.Now
	parts := []string{
		s.header.Render("Classboard"),
		s.clock.Render(format.ClockTime(now)),
		s.text.Render(format.ClockDate(now)),
		s.muted.Render(format.Title(format.WeekdayName(now))),
	}
	if m.state.Loading {
		parts = append(parts, m.spinner.View()+s.muted.Render(dashboard.LoadingText))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) refreshViewport() {
	content, cursorLine := m.renderBoard()
	m.viewport.SetContent(content)
	if cursorLine < 0 || m.viewport.Height <= 0 {
		return
	}
	if cursorLine < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorLine)
	} else if cursorLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

// renderBoard returns the body text and the line holding the cursor row,
// or -1 when there is no subject row.
func (m Model) renderBoard() (string, int) {
	s := m.styles
	var lines []string
	cursorLine := -1

	lines = append(lines, s.section.Render("Предметы"))
	subjects := m.state.Board.Subjects
	if subjects.Placeholder != "" {
		lines = append(lines, s.muted.Render(subjects.Placeholder))
	}
	for i, row := range subjects.Rows {
		cursor := "  "
		if i == m.state.Cursor {
			cursor = s.cursor.Render("> ")
			cursorLine = len(lines)
		}
		controls := make([]string, 0, 3)
		for _, c := range row.Controls() {
			controls = append(controls, m.renderControl(c))
		}
		lines = append(lines, cursor+s.name.Render(row.Name)+"  "+strings.Join(controls, " "))
	}

	lines = append(lines, "", s.section.Render("Расписание"))
	schedule := m.state.Board.Schedule
	if schedule.Placeholder != "" {
		lines = append(lines, s.muted.Render(schedule.Placeholder))
	}
	for _, day := range schedule.Days {
		title := s.dayTitle.Render(day.Label)
		if day.Today {
			title = s.today.Render(day.Label)
		}
		lines = append(lines, title)
		for _, l := range day.Lessons {
			line := "  " + s.lessonTime.Render(l.Time) + s.text.Render(l.Subject)
			if l.Meta != "" {
				line += s.bullet.Render(dashboard.MetaSeparator) + s.muted.Render(l.Meta)
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines, "", s.section.Render("Информация"))
	if m.state.Board.Info.Updated != "" {
		lines = append(lines, s.muted.Render(m.state.Board.Info.Updated))
	}
	lines = append(lines, s.text.Render(m.state.Board.Info.Message))

	return strings.Join(lines, "\n"), cursorLine
}

func (m Model) renderControl(c dashboard.Control) string {
	label := "[" + c.Label + "]"
	if c.Disabled {
		return m.styles.disabled.Render(label)
	}
	return m.styles.control.Render(label)
}

func (m Model) renderModal() string {
	s := m.styles
	k := m.cfg.Keys
	md := m.state.Modal

	var b strings.Builder
	b.WriteString(s.panelTitle.Render(md.Title()))
	if sub := md.Subtitle(); sub != "" {
		b.WriteString("\n")
		b.WriteString(sub)
	}
	b.WriteString("\n\n")
	b.WriteString(md.Body())
	b.WriteString("\n\n")

	actions := []string{}
	if md.OpenVisible() {
		actions = append(actions, s.panelAction.Render(fmt.Sprintf("[%s] Открыть", k.Open)))
	}
	if md.CopyVisible() {
		actions = append(actions, s.panelAction.Render(fmt.Sprintf("[%s] %s", k.Copy, md.CopyLabel())))
	}
	actions = append(actions,
		fmt.Sprintf("[%s] Закрыть", k.Close),
		fmt.Sprintf("[%s] Отмена", k.Cancel))
	b.WriteString(strings.Join(actions, "  "))

	return s.panel.Render(b.String())
}

func (m Model) renderHelp() string {
	return helpLine(m.styles, m.cfg.Keys)
}

func helpLine(s styles, k config.Keymap) string {
	pairs := [][2]string{
		{k.Up + "/" + k.Down, "move"},
		{k.Homework, "homework"},
		{k.Auto, "auto link"},
		{k.Group, "group link"},
		{k.Theme, "theme"},
		{k.Reload, "reload"},
		{"pgup/pgdn", "scroll"},
		{k.Quit, "quit"},
	}
	items := make([]string, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, s.key.Render(p[0])+": "+s.action.Render(p[1]))
	}
	return strings.Join(items, s.bullet.Render(" • "))
}
