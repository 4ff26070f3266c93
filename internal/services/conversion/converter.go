// Package conversion maps stored reference records onto typed a5e
// entries. Records that fail to decode or validate are rejected with
// errors.MalformedRecord and never rendered.
package conversion

//go:generate mockgen -destination=mock/mock_converter.go -package=conversionmock github.com/NekroDarkmoon/Zen.A5E/internal/services/conversion Converter

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/entities/a5e"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// Converter turns a raw record into a renderable entry
type Converter interface {
	// ToEntry decodes and validates a record of the given type
	ToEntry(entityType entities.EntityType, record *entities.Record) (a5e.Entry, error)
}

type converter struct {
	validate *validator.Validate
}

var _ Converter = (*converter)(nil)

// NewConverter creates a converter with the a5e validation rules registered
func NewConverter() (Converter, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("tradition", validateTradition); err != nil {
		return nil, errors.Wrap(err, "failed to register tradition validation")
	}
	return &converter{validate: v}, nil
}

func validateTradition(fl validator.FieldLevel) bool {
	_, ok := a5e.TraditionName(fl.Field().String())
	return ok
}

// ToEntry implements Converter
func (c *converter) ToEntry(entityType entities.EntityType, record *entities.Record) (a5e.Entry, error) {
	if record == nil {
		return nil, errors.InvalidArgument("record is required")
	}

	var entry a5e.Entry
	switch entityType {
	case entities.EntityTypeFeat:
		entry = &a5e.Feat{FeatName: record.Name, Description: record.Description, Type: record.Type}
	case entities.EntityTypeCondition:
		entry = &a5e.Condition{ConditionName: record.Name, Description: record.Description}
	case entities.EntityTypeSpell:
		spell := &a5e.Spell{SpellName: record.Name, Description: record.Description, Type: record.Type}
		if err := decodeExtra(record.Extra, &spell.Extras); err != nil {
			return nil, errors.MalformedRecord(entityType.String(), record.Name, err)
		}
		entry = spell
	case entities.EntityTypeManeuver:
		maneuver := &a5e.Maneuver{ManeuverName: record.Name, Description: record.Description}
		if err := decodeExtra(record.Extra, &maneuver.Extras); err != nil {
			return nil, errors.MalformedRecord(entityType.String(), record.Name, err)
		}
		entry = maneuver
	default:
		return nil, errors.InvalidArgumentf("unknown entity type %q", entityType)
	}

	if err := c.validate.Struct(entry); err != nil {
		return nil, errors.MalformedRecord(entityType.String(), record.Name, fieldErrors(err))
	}
	return entry, nil
}

// decodeExtra decodes the extra payload, which must be present
func decodeExtra(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.InvalidArgument("extra is missing")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(dst); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "extra does not decode")
	}
	return nil
}

// fieldErrors folds validator output into a ValidationError
func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range verrs {
		if fe.Param() != "" {
			vb.Fieldf(fe.Namespace(), "failed %s=%s", fe.Tag(), fe.Param())
			continue
		}
		vb.Fieldf(fe.Namespace(), "failed %s", fe.Tag())
	}
	return vb.Build()
}
