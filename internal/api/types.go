package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text decodes any JSON scalar into its string form. The sheet-backed
// endpoint emits numbers for cells like room, and null for empty cells.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(v))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) String() string { return string(t) }

type Subject struct {
	Subject  Text `json:"subject"`
	HomeWork Text `json:"hw_text"`
	AutoURL  Text `json:"auto_url"`
	GroupURL Text `json:"group_url"`
}

// Lesson is one row of the weekly schedule.
type Lesson struct {
	Day     Text `json:"day"`
	Time    Text `json:"time"`
	Subject Text `json:"subject"`
	Room    Text `json:"room"`
	Note    Text `json:"note"`
}

type InfoEntry struct {
	Key   Text `json:"key"`
	Value Text `json:"value"`
}

type Payload struct {
	OK       bool        `json:"ok"`
	Error    string      `json:"error,omitempty"`
	Subjects []Subject   `json:"subjects"`
	Schedule []Lesson    `json:"schedule"`
	Info     []InfoEntry `json:"info"`
}

func (p *Payload) normalize() {
	if p.Subjects == nil {
		p.Subjects = []Subject{}
	}
	if p.Schedule == nil {
		p.Schedule = []Lesson{}
	}
	if p.Info == nil {
		p.Info = []InfoEntry{}
	}
}
