// Package validation extends gin's go-playground validator with the custom tags
// used by request types and turns validation failures into response details.
//
//	type WeekQuery struct {
//	    WeekNum string `form:"week_num" binding:"omitempty,weeknum"`
//	}
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/utils"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs custom validators on gin's binding engine. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs custom tags, field naming and Optional unwrapping on v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation("weeknum", validateWeekNum); err != nil {
		return fmt.Errorf("failed to register weeknum: %w", err)
	}
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return fmt.Errorf("failed to register isodate: %w", err)
	}

	v.RegisterCustomTypeFunc(optionalValue,
		dto.Optional[string]{},
		dto.Optional[int8]{},
		dto.Optional[int]{},
		dto.Optional[float64]{},
		dto.Optional[time.Time]{},
	)
	return nil
}

func validateWeekNum(fl validator.FieldLevel) bool {
	_, _, err := utils.ParseWeekNum(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

// optionalValue exposes the wrapped value of a present, non-null Optional and nil
// otherwise, so omitempty skips absent and null fields.
func optionalValue(field reflect.Value) interface{} {
	if !field.FieldByName("Valid").Bool() {
		return nil
	}
	return field.FieldByName("Value").Interface()
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Describe converts a binding error into a message and optional field details.
func Describe(err error) (string, []FieldError) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
			names = append(names, fe.Field())
		}
		return "Invalid field(s): " + strings.Join(names, ", "), fields
	}

	var nullErr *dto.NullFieldError
	if errors.As(err, &nullErr) {
		return nullErr.Error(), []FieldError{{Field: nullErr.Field, Tag: "notnull"}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Invalid type for field %s", typeErr.Field), nil
	}

	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return "Dates must use the YYYY-MM-DD format", nil
	}

	return "Invalid request body", nil
}
