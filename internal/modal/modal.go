// Package modal holds the single overlay dialog shared by the dashboard.
// Content is a closed union: a dialog shows a link or a homework text,
// never both.
package modal

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultLinkTitle     = "Ссылка"
	HomeworkTitle        = "Домашнее задание"
	NoHomework           = "ДЗ отсутствует"
	CopyLabel            = "Скопировать"
	CopiedLabel          = "Скопировано ✅"
	CopyFailedLabel      = "Ошибка"
	CopyFeedbackDuration = 1200 * time.Millisecond
	fallbackURL          = "#"
)

var ErrNothingToCopy = errors.New("dialog has no copy action")

type Content interface {
	isContent()
}

type LinkContent struct {
	Title    string
	Subtitle string
	Body     string
	URL      string
}

type HomeworkContent struct {
	Subject string
	Text    string
}

func (LinkContent) isContent()     {}
func (HomeworkContent) isContent() {}

// Modal is owned by exactly one UI model; the zero value is hidden.
type Modal struct {
	visible   bool
	content   Content
	copyLabel string
	copySeq   int
}

func (m *Modal) ShowLink(c LinkContent) {
	m.Show(c)
}

func (m *Modal) ShowHomework(subject, text string) {
	m.Show(HomeworkContent{Subject: subject, Text: text})
}

// Show replaces whatever the dialog displayed before.
func (m *Modal) Show(c Content) {
	if c == nil {
		return
	}
	m.content = c
	m.visible = true
	m.copyLabel = CopyLabel
	m.copySeq++
}

func (m *Modal) Hide() {
	m.visible = false
}

func (m Modal) Visible() bool { return m.visible }

func (m Modal) Content() Content { return m.content }

func (m Modal) Title() string {
	switch c := m.content.(type) {
	case LinkContent:
		if c.Title == "" {
			return DefaultLinkTitle
		}
		return c.Title
	case HomeworkContent:
		if c.Subject == "" {
			return HomeworkTitle
		}
		return c.Subject
	}
	return ""
}

func (m Modal) Subtitle() string {
	switch c := m.content.(type) {
	case LinkContent:
		return c.Subtitle
	case HomeworkContent:
		return HomeworkTitle
	}
	return ""
}

func (m Modal) Body() string {
	switch c := m.content.(type) {
	case LinkContent:
		return c.Body
	case HomeworkContent:
		if c.Text == "" {
			return NoHomework
		}
		return c.Text
	}
	return ""
}

// URL is the open-action target; "#" when the link is blank.
func (m Modal) URL() string {
	c, ok := m.content.(LinkContent)
	if !ok {
		return ""
	}
	if u := strings.TrimSpace(c.URL); u != "" {
		return u
	}
	return fallbackURL
}

// OpenVisible is true only in link mode.
func (m Modal) OpenVisible() bool {
	_, ok := m.content.(LinkContent)
	return ok
}

func (m Modal) CopyVisible() bool {
	_, ok := m.content.(HomeworkContent)
	return ok
}

func (m Modal) CopyLabel() string {
	if m.copyLabel == "" {
		return CopyLabel
	}
	return m.copyLabel
}

// Copy writes the homework text through write and flips the copy label to
// success or failure. The returned sequence must be handed back to
// RevertCopy once CopyFeedbackDuration has passed.
func (m *Modal) Copy(write func(string) error) (int, error) {
	c, ok := m.content.(HomeworkContent)
	if !ok {
		return m.copySeq, ErrNothingToCopy
	}
	m.copySeq++
	if err := write(c.Text); err != nil {
		m.copyLabel = CopyFailedLabel
		return m.copySeq, err
	}
	m.copyLabel = CopiedLabel
	return m.copySeq, nil
}

// RevertCopy restores the default label unless a newer Show or Copy happened.
func (m *Modal) RevertCopy(seq int) {
	if seq != m.copySeq {
		return
	}
	m.copyLabel = CopyLabel
}
