package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classboard/internal/api"
	"classboard/internal/modal"
)

func TestSubjectsEmpty(t *testing.T) {
	pane := Subjects(nil)
	assert.Equal(t, NoSubjects, pane.Placeholder)
	assert.Empty(t, pane.Rows)
}

func TestSubjectsSkipBlankNamesKeepOrder(t *testing.T) {
	pane := Subjects([]api.Subject{
		{Subject: "Physics"},
		{Subject: "   "},
		{Subject: ""},
		{Subject: " Math "},
		{Subject: "Art"},
	})
	require.Len(t, pane.Rows, 3)
	assert.Equal(t, "", pane.Placeholder)
	assert.Equal(t, []string{"Physics", "Math", "Art"}, names(pane))
}

func names(p SubjectsPane) []string {
	var out []string
	for _, r := range p.Rows {
		out = append(out, r.Name)
	}
	return out
}

func TestSubjectControls(t *testing.T) {
	pane := Subjects([]api.Subject{{Subject: "Math", AutoURL: "", GroupURL: "http://g", HomeWork: "p. 12"}})
	require.Len(t, pane.Rows, 1)
	row := pane.Rows[0]

	assert.True(t, row.Auto.Disabled)
	assert.Equal(t, "Для автомата (нет)", row.Auto.Label)
	assert.Nil(t, row.Auto.Activate())

	assert.False(t, row.Group.Disabled)
	assert.Equal(t, GroupLabel, row.Group.Label)
	assert.Equal(t, modal.LinkContent{
		Title:    "Math",
		Subtitle: GroupLabel,
		Body:     "Откроется ссылка:\nhttp://g",
		URL:      "http://g",
	}, row.Group.Activate())

	assert.Equal(t, modal.HomeworkContent{Subject: "Math", Text: "p. 12"}, row.Homework.Activate())
	assert.Equal(t, row.Group, row.Control(ControlGroup))
	assert.Len(t, row.Controls(), 3)
}

func TestSubjectsRebuildReplaces(t *testing.T) {
	first := Subjects([]api.Subject{{Subject: "A"}, {Subject: "B"}})
	second := Subjects([]api.Subject{{Subject: "C"}})
	assert.Len(t, first.Rows, 2)
	assert.Equal(t, []string{"C"}, names(second))
}

func TestScheduleGrouping(t *testing.T) {
	pane := Schedule([]api.Lesson{
		{Day: "вт", Subject: "1"},
		{Day: "пн", Subject: "2"},
		{Day: " ", Subject: "dropped"},
		{Day: "вт", Subject: "3"},
		{Day: "пн", Subject: "4"},
		{Day: "ср", Subject: "5"},
	}, "ПН", time.UTC)

	require.Len(t, pane.Days, 3)
	assert.Equal(t, "вт", pane.Days[0].Label)
	assert.Equal(t, "пн", pane.Days[1].Label)
	assert.Equal(t, "ср", pane.Days[2].Label)
	assert.False(t, pane.Days[0].Today)
	assert.True(t, pane.Days[1].Today)

	var got []string
	for _, l := range pane.Days[0].Lessons {
		got = append(got, l.Subject)
	}
	assert.Equal(t, []string{"1", "3"}, got)
	assert.Equal(t, "4", pane.Days[1].Lessons[1].Subject)
}

func TestScheduleEmpty(t *testing.T) {
	assert.Equal(t, NoSchedule, Schedule([]api.Lesson{}, "пн", time.UTC).Placeholder)
}

func TestLessonLine(t *testing.T) {
	pane := Schedule([]api.Lesson{
		{Day: "пн", Time: "1899-12-30T08:30:00Z", Subject: "", Room: "101", Note: "контрольная"},
		{Day: "пн", Time: "10:30-12:00", Subject: "Math", Note: "  "},
		{Day: "пн", Time: "", Subject: "Art", Room: "5"},
	}, "", time.UTC)

	lessons := pane.Days[0].Lessons
	assert.Equal(t, LessonLine{Time: "08:30", Subject: "—", Meta: "ауд. 101 • контрольная"}, lessons[0])
	assert.Equal(t, LessonLine{Time: "10:30-12:00", Subject: "Math", Meta: ""}, lessons[1])
	assert.Equal(t, LessonLine{Time: "--", Subject: "Art", Meta: "ауд. 5"}, lessons[2])
}

func TestInfo(t *testing.T) {
	pane := Info([]api.InfoEntry{
		{Key: " updated_at ", Value: "2024-03-05T08:30:00Z"},
		{Key: "message", Value: "old"},
		{Key: "message", Value: "Hi"},
	}, time.UTC)
	assert.Equal(t, "Обновлено: 05.03.2024", pane.Updated)
	assert.Equal(t, "Hi", pane.Message)
}

func TestInfoDefaults(t *testing.T) {
	pane := Info(nil, time.UTC)
	assert.Equal(t, "", pane.Updated)
	assert.Equal(t, NoInfo, pane.Message)

	pane = Info([]api.InfoEntry{{Key: "updated_at", Value: "вчера"}, {Key: "message", Value: ""}}, time.UTC)
	assert.Equal(t, "Обновлено: вчера", pane.Updated)
	assert.Equal(t, NoInfo, pane.Message)
}

func TestBuildScenario(t *testing.T) {
	board := Build(api.Payload{
		OK:       true,
		Subjects: []api.Subject{{Subject: "Math", AutoURL: "", GroupURL: "http://g"}},
		Schedule: []api.Lesson{},
		Info:     []api.InfoEntry{{Key: "message", Value: "Hi"}},
	}, "пн", time.UTC)

	require.Len(t, board.Subjects.Rows, 1)
	assert.Equal(t, "Math", board.Subjects.Rows[0].Name)
	assert.True(t, board.Subjects.Rows[0].Auto.Disabled)
	assert.False(t, board.Subjects.Rows[0].Group.Disabled)
	assert.Equal(t, NoSchedule, board.Schedule.Placeholder)
	assert.Equal(t, "Hi", board.Info.Message)
}

func TestFailed(t *testing.T) {
	board := Failed(&api.APIError{Message: "boom"})
	assert.Empty(t, board.Subjects.Rows)
	assert.Empty(t, board.Schedule.Days)
	for _, s := range []string{board.Subjects.Placeholder, board.Schedule.Placeholder, board.Info.Message} {
		assert.Equal(t, "Ошибка: boom", s)
	}
	assert.Equal(t, "", board.Info.Updated)

	assert.Contains(t, Failed(errors.New("x")).Info.Message, "x")
	assert.Equal(t, UnconfiguredMsg, Unconfigured().Schedule.Placeholder)
	assert.Equal(t, LoadingText, Loading().Subjects.Placeholder)
}
