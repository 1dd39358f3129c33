package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/utils"
)

// Optional records whether a JSON field was present and whether it was null.
//
//	{}              -> Set=false
//	{"title":null}  -> Set=true, Valid=false
//	{"title":"x"}   -> Set=true, Valid=true, Value="x"
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// IsNull reports an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.Set && !o.Valid
}

// Ptr returns nil for null, otherwise a pointer to the value.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// Some builds a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null builds a present, null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: utils.Truncate(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(constants.DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	// Accept full timestamps from clients that send them, keeping the date part.
	if len(s) > len(constants.DateLayout) && strings.ContainsAny(s[len(constants.DateLayout):], "T ") {
		s = s[:len(constants.DateLayout)]
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// DatePtr converts an optional model date.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// nullable lets request types reject explicit nulls on required columns.
type nullable interface {
	IsNull() bool
}

// NullFieldError names a required field that was sent as null.
type NullFieldError struct {
	Field string
}

func (e *NullFieldError) Error() string {
	return e.Field + " cannot be null"
}

func rejectNull(fields map[string]nullable) error {
	for name, f := range fields {
		if f.IsNull() {
			return &NullFieldError{Field: name}
		}
	}
	return nil
}
