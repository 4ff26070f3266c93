package a5e

import (
	"unicode/utf8"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/chunk"
)

// DescriptionChunkSize is the piece size used when a description is too
// long for a single field.
const DescriptionChunkSize = 1000

// Entry is a typed reference entry that can be displayed
type Entry interface {
	Name() string
	Kind() entities.EntityType
	// Render returns one or more segments. author is shown on the first
	// segment and may be empty.
	Render(author string) []entities.Segment
}

// describeInField puts description into a field of first. Long text is
// chunked; the remaining pieces become follow-up segments in the same
// color.
func describeInField(first entities.Segment, name, description string) []entities.Segment {
	if utf8.RuneCountInString(description) <= entities.MaxFieldValueLength {
		first.AddField(name, description, false)
		return []entities.Segment{first}
	}

	pieces := chunk.Split(description, DescriptionChunkSize)
	first.AddField(name, pieces[0], false)
	segments := []entities.Segment{first}
	for _, piece := range pieces[1:] {
		segments = append(segments, entities.Segment{Description: piece, Color: first.Color})
	}
	return segments
}

// describeInBody puts description into the segment body, spilling into
// follow-up segments past the body limit.
func describeInBody(first entities.Segment, description string) []entities.Segment {
	pieces := chunk.Split(description, entities.MaxDescriptionLength)
	first.Description = pieces[0]
	segments := []entities.Segment{first}
	for _, piece := range pieces[1:] {
		segments = append(segments, entities.Segment{Description: piece, Color: first.Color})
	}
	return segments
}
