package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "immigration-crm/internal/errors"
	"immigration-crm/internal/model"
)

// dateLayout is the wire format for date-only fields (deadlines, filing
// dates, birth dates, due dates).
const dateLayout = "2006-01-02"

// parseDate converts an optional YYYY-MM-DD string into a *time.Time.
// Empty means absent.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be a date formatted %s", field, dateLayout))
	}
	return &t, nil
}

// validatePriority accepts the three known priorities; empty falls back to
// the column default.
func validatePriority(priority string) error {
	switch priority {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	default:
		return apperrors.NewValidationError("priority must be one of: Low, Medium, High")
	}
}

// notFoundOr translates a gorm record miss into the given domain sentinel
// and passes every other store failure through untouched.
func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
