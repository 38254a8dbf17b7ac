package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	checklistdomain "checklist-app-go/internal/domain/checklist"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names, not Go ones, in validation messages.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("invalid request")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "datetime":
		return fmt.Errorf("%s must be formatted as YYYY-MM-DD", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

// parseDateParam parses an optional YYYY-MM-DD value, defaulting to today.
func parseDateParam(value string) (time.Time, string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), now.Format(checklistdomain.DateLayout), nil
	}
	parsed, err := time.Parse(checklistdomain.DateLayout, value)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	return parsed, value, nil
}

// parseDateRequired parses a mandatory YYYY-MM-DD query parameter.
func parseDateRequired(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	parsed, err := time.Parse(checklistdomain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as YYYY-MM-DD", name)
	}
	return parsed, nil
}
