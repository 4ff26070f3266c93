package a5e

import "github.com/NekroDarkmoon/Zen.A5E/internal/entities"

// Condition is a status condition such as Blinded or Prone
type Condition struct {
	ConditionName string `validate:"required"`
	Description   string `validate:"required"`
}

var _ Entry = (*Condition)(nil)

// Name returns the condition name
func (c *Condition) Name() string { return c.ConditionName }

// Kind returns EntityTypeCondition
func (c *Condition) Kind() entities.EntityType { return entities.EntityTypeCondition }

// Render builds the condition segments
func (c *Condition) Render(author string) []entities.Segment {
	return describeInBody(entities.Segment{
		Title:  Capitalize(c.ConditionName),
		Author: author,
		Color:  entities.ColorCondition,
	}, c.Description)
}
