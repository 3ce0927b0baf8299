package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fail(ErrValidation, "request.invalid", err)
	}
	return nil
}

// parseOptionalTimestamp parses an RFC 3339 timestamp; nil or blank input yields nil.
func parseOptionalTimestamp(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}

// parseOptionalID reports ok == false for nil, blank or malformed ids.
func parseOptionalID(value *string) (uuid.UUID, bool) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
