package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"classboard/internal/api"
	"classboard/internal/applog"
	"classboard/internal/config"
	"classboard/internal/dashboard"
	"classboard/internal/format"
	"classboard/internal/modal"
	"classboard/internal/storage"
)

// Loader is the one-shot data source behind the dashboard.
type Loader interface {
	LoadAll(ctx context.Context) (api.Payload, error)
	Configured() bool
}

// AppState is everything the dashboard mutates. It is owned by Model and
// never shared.
type AppState struct {
	Theme   Theme
	Modal   modal.Modal
	Board   dashboard.Board
	Cursor  int
	Loading bool
	Now     time.Time

	payload *api.Payload
	today   string
}

type Deps struct {
	Loader    Loader
	Prefs     Prefs
	Location  *time.Location
	Now       func() time.Time
	Clipboard func(string) error
	OpenURL   func(string) error
	Log       *slog.Logger
}

type Model struct {
	cfg    config.Config
	deps   Deps
	state  AppState
	styles styles

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	status   string
}

type (
	tickMsg   time.Time
	loadedMsg struct {
		payload api.Payload
		err     error
	}
	copyRevertMsg struct{ seq int }
	statusMsg     string
)

func openInBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

func New(cfg config.Config, d Deps) Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.WriteAll
	}
	if d.OpenURL == nil {
		d.OpenURL = openInBrowser
	}
	if d.Log == nil {
		d.Log = applog.WithComponent("ui")
	}
	cfg.Keys = cfg.Keys.WithDefaults()

	theme, err := loadTheme(d.Prefs)
	status := "Загрузка данных…"
	if err != nil {
		d.Log.Warn("read theme failed", slog.Any("err", err))
		status = fmt.Sprintf("theme load failed: %v", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	m := Model{
		cfg:      cfg,
		deps:     d,
		styles:   stylesFor(theme),
		spinner:  sp,
		viewport: vp,
		status:   status,
	}
	m.state.Theme = theme
	m.state.Now = d.Now().In(d.Location)
	m.state.today = format.ShortWeekday(m.state.Now)

	if d.Loader == nil || !d.Loader.Configured() {
		m.state.Board = dashboard.Unconfigured()
		m.status = dashboard.UnconfiguredMsg
	} else {
		m.state.Board = dashboard.Loading()
		m.state.Loading = true
	}
	m.refreshViewport()
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(store *storage.Store, cfg config.Config, loader Loader) error {
	loc, err := cfg.Location()
	if err != nil {
		applog.WithComponent("ui").Warn("bad timezone, using local", slog.Any("err", err))
	}
	m := New(cfg, Deps{Loader: loader, Prefs: store, Location: loc})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

// State exposes a copy of the current state, mostly for tests.
func (m Model) State() AppState { return m.state }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if m.state.Loading {
		cmds = append(cmds, m.spinner.Tick, m.loadCmd())
	}
	return tea.Batch(cmds...)
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadCmd() tea.Cmd {
	loader := m.deps.Loader
	log := m.deps.Log
	return func() tea.Msg {
		log.Info("load started")
		p, err := loader.LoadAll(context.Background())
		if err != nil {
			log.Error("load failed", slog.String("kind", api.Kind(err)), slog.Any("err", err))
		}
		return loadedMsg{payload: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeLines, 3)
		m.refreshViewport()
		return m, nil
	case tickMsg:
		return m.onTick(time.Time(msg)), clockTick()
	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		return m.onLoaded(msg), nil
	case copyRevertMsg:
		m.state.Modal.RevertCopy(msg.seq)
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.MouseMsg:
		return m.onMouse(msg)
	case tea.KeyMsg:
		if m.state.Modal.Visible() {
			return m.updateModal(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) onTick(t time.Time) Model {
	m.state.Now = t.In(m.deps.Location)
	today := format.ShortWeekday(m.state.Now)
	if today != m.state.today {
		m.state.today = today
		if m.state.payload != nil {
			m.state.Board.Schedule = dashboard.Schedule(m.state.payload.Schedule, today, m.deps.Location)
			m.refreshViewport()
		}
	}
	return m
}

func (m Model) onLoaded(msg loadedMsg) Model {
	m.state.Loading = false
	if msg.err != nil {
		m.state.payload = nil
		m.state.Board = dashboard.Failed(msg.err)
		m.status = fmt.Sprintf("load failed: %v", msg.err)
	} else {
		p := msg.payload
		m.state.payload = &p
		m.state.Board = dashboard.Build(p, m.state.today, m.deps.Location)
		m.status = fmt.Sprintf("Загружено: %d предметов, %d дней", len(m.state.Board.Subjects.Rows), len(m.state.Board.Schedule.Days))
	}
	m.state.Cursor = clampCursor(m.state.Cursor, len(m.state.Board.Subjects.Rows))
	m.refreshViewport()
	return m
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state.Modal.Visible() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.insidePanel(msg.X, msg.Y) {
			m.state.Modal.Hide()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// insidePanel mirrors lipgloss.Place centring to find the dialog's cells.
func (m Model) insidePanel(x, y int) bool {
	if m.width == 0 || m.height == 0 {
		return true
	}
	w, h := lipgloss.Size(m.renderModal())
	left := centreOffset(m.width - w)
	top := centreOffset(m.height - h)
	return x >= left && x < left+w && y >= top && y < top+h
}

// centreOffset is where lipgloss.Place puts a block with gap spare cells:
// the extra cell of an odd gap goes after the block.
func centreOffset(gap int) int {
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", k.Cancel, k.Close:
		m.state.Modal.Hide()
	case k.Open:
		if !m.state.Modal.OpenVisible() {
			return m, nil
		}
		return m, m.openCmd(m.state.Modal.URL())
	case k.Copy:
		if !m.state.Modal.CopyVisible() {
			return m, nil
		}
		seq, err := m.state.Modal.Copy(m.deps.Clipboard)
		if err != nil {
			m.deps.Log.Warn("clipboard write failed", slog.Any("err", err))
		}
		return m, tea.Tick(modal.CopyFeedbackDuration, func(time.Time) tea.Msg { return copyRevertMsg{seq: seq} })
	}
	return m, nil
}

func (m Model) openCmd(url string) tea.Cmd {
	open := m.deps.OpenURL
	log := m.deps.Log
	return func() tea.Msg {
		if url == "" || url == "#" {
			return statusMsg("Ссылка отсутствует")
		}
		if err := open(url); err != nil {
			log.Warn("open link failed", slog.String("url", url), slog.Any("err", err))
			return statusMsg(fmt.Sprintf("open failed: %v", err))
		}
		return statusMsg("Открыто: " + url)
	}
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	rows := m.state.Board.Subjects.Rows
	switch msg.String() {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		if len(rows) == 0 {
			return m, nil
		}
		m.state.Cursor = clampCursor(m.state.Cursor+1, len(rows))
		m.refreshViewport()
	case k.Up, "up":
		if m.state.Cursor > 0 {
			m.state.Cursor = clampCursor(m.state.Cursor-1, len(rows))
			m.refreshViewport()
		}
	case k.Homework, "enter":
		return m.activate(dashboard.ControlHomework), nil
	case k.Auto:
		return m.activate(dashboard.ControlAuto), nil
	case k.Group:
		return m.activate(dashboard.ControlGroup), nil
	case k.Theme:
		return m.toggleTheme(), nil
	case k.Reload:
		if m.state.Loading || m.deps.Loader == nil || !m.deps.Loader.Configured() {
			return m, nil
		}
		m.state.Loading = true
		m.status = "Загрузка данных…"
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) activate(kind dashboard.ControlKind) Model {
	rows := m.state.Board.Subjects.Rows
	if len(rows) == 0 {
		m.status = "Нет предметов"
		return m
	}
	row := rows[clampCursor(m.state.Cursor, len(rows))]
	c := row.Control(kind)
	content := c.Activate()
	if content == nil {
		m.status = fmt.Sprintf("%s: ссылка отсутствует", row.Name)
		return m
	}
	m.state.Modal.Show(content)
	return m
}

func (m Model) toggleTheme() Model {
	next := m.state.Theme.Next()
	m.state.Theme = next
	m.styles = stylesFor(next)
	m.refreshViewport()
	if m.deps.Prefs == nil {
		return m
	}
	if err := m.deps.Prefs.SetPref(storage.ThemeKey, string(next)); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		m.deps.Log.Warn("persist theme failed", slog.Any("err", err))
		return m
	}
	m.deps.Log.Info("theme changed", slog.String("theme", string(next)))
	m.status = "Тема: " + string(next)
	return m
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
