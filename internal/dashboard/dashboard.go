// Package dashboard turns a loaded payload into the three display panes.
// Every builder is pure: calling it again yields a fresh pane that fully
// replaces the previous one.
package dashboard

import (
	"strings"
	"time"

	"classboard/internal/api"
	"classboard/internal/format"
	"classboard/internal/modal"
)

const (
	NoSubjects      = "Нет предметов."
	NoSchedule      = "Нет расписания."
	NoInfo          = "Нет актуальной информации."
	LoadingText     = "Загрузка…"
	UnconfiguredMsg = "Укажи endpoint в config.toml"
	ErrorPrefix     = "Ошибка: "
	UpdatedPrefix   = "Обновлено: "
	RoomPrefix      = "ауд. "
	MetaSeparator   = " • "
	NoSubjectName   = "—"
	DefaultSubject  = "Предмет"

	HomeworkLabel = "ДЗ"
	AutoLabel     = "Для автомата"
	GroupLabel    = "Вступить в группу"
	missingSuffix = " (нет)"
)

type ControlKind int

const (
	ControlHomework ControlKind = iota
	ControlAuto
	ControlGroup
)

// Control is one action button on a subject row. It carries the dialog
// content it opens, so nothing outside the row has to be consulted.
type Control struct {
	Kind     ControlKind
	Label    string
	Disabled bool
	content  modal.Content
}

// Activate returns the dialog content, or nil for a disabled control.
func (c Control) Activate() modal.Content {
	if c.Disabled {
		return nil
	}
	return c.content
}

type SubjectRow struct {
	Name     string
	Homework Control
	Auto     Control
	Group    Control
}

func (r SubjectRow) Controls() []Control {
	return []Control{r.Homework, r.Auto, r.Group}
}

// Control looks up a row control by kind.
func (r SubjectRow) Control(kind ControlKind) Control {
	switch kind {
	case ControlAuto:
		return r.Auto
	case ControlGroup:
		return r.Group
	default:
		return r.Homework
	}
}

type SubjectsPane struct {
	Placeholder string
	Rows        []SubjectRow
}

type LessonLine struct {
	Time    string
	Subject string
	Meta    string
}

type Day struct {
	Label   string
	Today   bool
	Lessons []LessonLine
}

type SchedulePane struct {
	Placeholder string
	Days        []Day
}

type InfoPane struct {
	Updated string
	Message string
}

type Board struct {
	Subjects SubjectsPane
	Schedule SchedulePane
	Info     InfoPane
}

func Subjects(rows []api.Subject) SubjectsPane {
	if len(rows) == 0 {
		return SubjectsPane{Placeholder: NoSubjects}
	}
	out := make([]SubjectRow, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Subject.String())
		if name == "" {
			continue
		}
		out = append(out, SubjectRow{
			Name: name,
			Homework: Control{
				Kind:    ControlHomework,
				Label:   HomeworkLabel,
				content: modal.HomeworkContent{Subject: name, Text: r.HomeWork.String()},
			},
			Auto:  linkControl(ControlAuto, AutoLabel, r.AutoURL.String(), name),
			Group: linkControl(ControlGroup, GroupLabel, r.GroupURL.String(), name),
		})
	}
	return SubjectsPane{Rows: out}
}

func linkControl(kind ControlKind, label, url, subject string) Control {
	url = strings.TrimSpace(url)
	if url == "" {
		return Control{Kind: kind, Label: label + missingSuffix, Disabled: true}
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return Control{
		Kind:  kind,
		Label: label,
		content: modal.LinkContent{
			Title:    subject,
			Subtitle: label,
			Body:     "Откроется ссылка:\n" + url,
			URL:      url,
		},
	}
}

// Schedule groups lessons by day, keeping first-seen day order and the input
// order inside each day. today is compared case- and space-insensitively.
func Schedule(rows []api.Lesson, today string, loc *time.Location) SchedulePane {
	if len(rows) == 0 {
		return SchedulePane{Placeholder: NoSchedule}
	}
	var days []Day
	index := map[string]int{}
	for _, r := range rows {
		day := strings.TrimSpace(r.Day.String())
		if day == "" {
			continue
		}
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, Day{Label: day, Today: format.SameDay(day, today)})
		}
		days[i].Lessons = append(days[i].Lessons, lessonLine(r, loc))
	}
	return SchedulePane{Days: days}
}

func lessonLine(l api.Lesson, loc *time.Location) LessonLine {
	subject := strings.TrimSpace(l.Subject.String())
	if subject == "" {
		subject = NoSubjectName
	}
	var meta []string
	if room := strings.TrimSpace(l.Room.String()); room != "" {
		meta = append(meta, RoomPrefix+room)
	}
	if note := strings.TrimSpace(l.Note.String()); note != "" {
		meta = append(meta, note)
	}
	return LessonLine{
		Time:    format.FormatTimeOnly(l.Time.String(), loc),
		Subject: subject,
		Meta:    strings.Join(meta, MetaSeparator),
	}
}

// Info collapses key/value rows; a repeated key keeps its last value.
func Info(rows []api.InfoEntry, loc *time.Location) InfoPane {
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[strings.TrimSpace(r.Key.String())] = r.Value.String()
	}
	var pane InfoPane
	if raw := values["updated_at"]; raw != "" {
		if upd := format.FormatDateOnly(raw, loc); upd != "" {
			pane.Updated = UpdatedPrefix + upd
		}
	}
	pane.Message = values["message"]
	if pane.Message == "" {
		pane.Message = NoInfo
	}
	return pane
}

func Build(p api.Payload, today string, loc *time.Location) Board {
	return Board{
		Subjects: Subjects(p.Subjects),
		Schedule: Schedule(p.Schedule, today, loc),
		Info:     Info(p.Info, loc),
	}
}

func filled(text string) Board {
	return Board{
		Subjects: SubjectsPane{Placeholder: text},
		Schedule: SchedulePane{Placeholder: text},
		Info:     InfoPane{Message: text},
	}
}

func Loading() Board { return filled(LoadingText) }

func Unconfigured() Board { return filled(UnconfiguredMsg) }

// Failed replaces all three panes with the same error text.
func Failed(err error) Board {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return filled(ErrorPrefix + msg)
}
