package ui

import (
	"github.com/charmbracelet/lipgloss"

	"classboard/internal/storage"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func parseTheme(v string) Theme {
	if Theme(v) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Prefs is the key/value store the theme round-trips through.
type Prefs interface {
	GetPref(key string) (string, bool, error)
	SetPref(key, value string) error
}

func loadTheme(p Prefs) (Theme, error) {
	if p == nil {
		return ThemeDark, nil
	}
	v, ok, err := p.GetPref(storage.ThemeKey)
	if err != nil || !ok {
		return ThemeDark, err
	}
	return parseTheme(v), nil
}

type palette struct {
	fg, muted, accent, highlight, danger, panelBg, border string
}

var palettes = map[Theme]palette{
	ThemeDark: {
		fg:        "252",
		muted:     "240",
		accent:    "86",
		highlight: "229",
		danger:    "196",
		panelBg:   "236",
		border:    "57",
	},
	ThemeLight: {
		fg:        "235",
		muted:     "245",
		accent:    "25",
		highlight: "130",
		danger:    "160",
		panelBg:   "255",
		border:    "33",
	},
}

type styles struct {
	header      lipgloss.Style
	section     lipgloss.Style
	clock       lipgloss.Style
	text        lipgloss.Style
	muted       lipgloss.Style
	cursor      lipgloss.Style
	name        lipgloss.Style
	control     lipgloss.Style
	disabled    lipgloss.Style
	dayTitle    lipgloss.Style
	today       lipgloss.Style
	lessonTime  lipgloss.Style
	status      lipgloss.Style
	key         lipgloss.Style
	action      lipgloss.Style
	bullet      lipgloss.Style
	panel       lipgloss.Style
	panelTitle  lipgloss.Style
	panelAction lipgloss.Style
}

func stylesFor(t Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[ThemeDark]
	}
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(c(p.accent)),
		section:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(c(p.accent)),
		clock:      lipgloss.NewStyle().Foreground(c(p.highlight)),
		text:       lipgloss.NewStyle().Foreground(c(p.fg)),
		muted:      lipgloss.NewStyle().Foreground(c(p.muted)),
		cursor:     lipgloss.NewStyle().Bold(true).Foreground(c(p.highlight)),
		name:       lipgloss.NewStyle().Bold(true).Foreground(c(p.fg)),
		control:    lipgloss.NewStyle().Foreground(c(p.accent)),
		disabled:   lipgloss.NewStyle().Faint(true).Foreground(c(p.muted)),
		dayTitle:   lipgloss.NewStyle().Bold(true).Foreground(c(p.fg)),
		today:      lipgloss.NewStyle().Bold(true).Foreground(c(p.panelBg)).Background(c(p.highlight)).Padding(0, 1),
		lessonTime: lipgloss.NewStyle().Width(12).Foreground(c(p.highlight)),
		status:     lipgloss.NewStyle().Foreground(c(p.danger)),
		key:        lipgloss.NewStyle().Foreground(c(p.accent)),
		action:     lipgloss.NewStyle().Foreground(c(p.fg)),
		bullet:     lipgloss.NewStyle().Foreground(c(p.muted)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.border)).
			Background(c(p.panelBg)).
			Foreground(c(p.fg)).
			Padding(1, 2).
			Width(60),
		panelTitle:  lipgloss.NewStyle().Bold(true).Foreground(c(p.accent)).Background(c(p.panelBg)),
		panelAction: lipgloss.NewStyle().Bold(true).Foreground(c(p.highlight)).Background(c(p.panelBg)),
	}
}
