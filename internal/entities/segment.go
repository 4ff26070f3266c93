package entities

// Display limits for a single segment
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
	MaxFieldValueLength  = 1024
	MaxFields            = 25
)

// Colors used by rendered segments
const (
	ColorDefault   = 0x7289da
	ColorFeat      = 0x1abc9c
	ColorSpell     = 0x9b59b6
	ColorManeuver  = 0xe67e22
	ColorCondition = 0xe74c3c
)

// Field is a named block inside a segment
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Segment is one display block sent to the chat surface
type Segment struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Author      string  `json:"author,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Color       int     `json:"color,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

// AddField appends a field
func (s *Segment) AddField(name, value string, inline bool) *Segment {
	s.Fields = append(s.Fields, Field{Name: name, Value: value, Inline: inline})
	return s
}
