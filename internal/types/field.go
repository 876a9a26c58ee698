package types

import (
	"strings"

	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// Field names one of the per-day values a bar carries.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// AllFields returns the recognized fields in canonical order.
func AllFields() []Field {
	return []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}
}

// ParseField converts a field name into a Field.
// Returns an ErrCodeUnknownField error for unrecognized names.
func ParseField(s string) (Field, error) {
	field := Field(s)
	if err := field.Validate(); err != nil {
		return "", err
	}

	return field, nil
}

// Validate checks that the field is one of the recognized names.
func (f Field) Validate() error {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return nil
	default:
		return errors.Newf(errors.ErrCodeUnknownField, "unknown field %q", string(f))
	}
}

// IsPrice reports whether the field is a price. Volume is a share count.
func (f Field) IsPrice() bool {
	return f != FieldVolume
}

// Title returns the field name capitalized for report labels.
func (f Field) Title() string {
	s := string(f)
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// Value extracts the named field from the bar. Volume is converted to
// float64 so aggregations treat all five fields uniformly.
func (b DailyBar) Value(f Field) (float64, error) {
	switch f {
	case FieldOpen:
		return b.Open, nil
	case FieldHigh:
		return b.High, nil
	case FieldLow:
		return b.Low, nil
	case FieldClose:
		return b.Close, nil
	case FieldVolume:
		return float64(b.Volume), nil
	default:
		return 0, errors.Newf(errors.ErrCodeUnknownField, "unknown field %q", string(f))
	}
}
