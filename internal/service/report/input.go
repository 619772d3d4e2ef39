package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// dateLayout is the calendar date format accepted by the dashboard filters.
const dateLayout = time.DateOnly

// ConversationsInput holds the raw dashboard conversation list filters.
// Dates are calendar days in the business timezone; both ends are inclusive.
type ConversationsInput struct {
	Status    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// Validate checks all fields and collects all errors.
func (i *ConversationsInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != "" && !domain.Status(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: fmt.Sprintf("invalid value %q", i.Status)})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 1"})
	}
	if i.Limit < 0 || i.Limit > domain.MaxPageLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", domain.MaxPageLimit)})
	}
	errs = append(errs, validateDates(i.StartDate, i.EndDate)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *ConversationsInput) filter(loc *time.Location) domain.ConversationFilter {
	f := domain.ConversationFilter{Page: i.Page, Limit: i.Limit}
	if i.Status != "" {
		f.Status = domain.Ptr(domain.Status(i.Status))
	}
	f.StartDate, f.EndDate = dateRange(i.StartDate, i.EndDate, loc)
	f.Normalize()
	return f
}

// TrackingInput holds the raw dashboard tracking report filters.
type TrackingInput struct {
	StartDate string
	EndDate   string
	City      string
	Sender    string
}

// Validate checks all fields and collects all errors.
func (i *TrackingInput) Validate() error {
	var errs []domain.FieldError

	if len(i.City) > 200 {
		errs = append(errs, domain.FieldError{Field: "city", Message: "too long (max 200)"})
	}
	if len(i.Sender) > 200 {
		errs = append(errs, domain.FieldError{Field: "sender", Message: "too long (max 200)"})
	}
	errs = append(errs, validateDates(i.StartDate, i.EndDate)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *TrackingInput) filter(loc *time.Location) domain.TrackingFilter {
	f := domain.TrackingFilter{
		City:   strings.TrimSpace(i.City),
		Sender: strings.TrimSpace(i.Sender),
	}
	f.StartDate, f.EndDate = dateRange(i.StartDate, i.EndDate, loc)
	return f
}

func validateDates(start, end string) []domain.FieldError {
	var errs []domain.FieldError
	var from, to time.Time
	var err error

	if start != "" {
		if from, err = time.Parse(dateLayout, start); err != nil {
			errs = append(errs, domain.FieldError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if end != "" {
		if to, err = time.Parse(dateLayout, end); err != nil {
			errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if len(errs) == 0 && start != "" && end != "" && to.Before(from) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	return errs
}

// dateRange turns inclusive calendar days into a half-open instant range
// [start 00:00, day after end 00:00) in loc. Empty bounds stay open.
// Inputs must have passed validateDates.
func dateRange(start, end string, loc *time.Location) (*time.Time, *time.Time) {
	var from, to *time.Time
	if start != "" {
		if t, err := time.ParseInLocation(dateLayout, start, loc); err == nil {
			from = &t
		}
	}
	if end != "" {
		if t, err := time.ParseInLocation(dateLayout, end, loc); err == nil {
			next := t.AddDate(0, 0, 1)
			to = &next
		}
	}
	return from, to
}
