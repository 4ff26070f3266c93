package a5e

import "github.com/NekroDarkmoon/Zen.A5E/internal/entities"

// Feat is a character feat
type Feat struct {
	FeatName    string `validate:"required"`
	Description string `validate:"required"`
	Type        string
}

var _ Entry = (*Feat)(nil)

// Name returns the feat name
func (f *Feat) Name() string { return f.FeatName }

// Kind returns EntityTypeFeat
func (f *Feat) Kind() entities.EntityType { return entities.EntityTypeFeat }

// Render builds the feat segments
func (f *Feat) Render(author string) []entities.Segment {
	seg := entities.Segment{
		Title:  f.FeatName,
		Author: author,
		Color:  entities.ColorFeat,
	}
	if f.Type != "" {
		seg.Footer = Capitalize(f.Type) + " feat"
	}
	return describeInBody(seg, f.Description)
}
