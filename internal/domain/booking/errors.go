package booking

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrContactRequired  = errors.New("name and phone are required")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotUnavailable  = errors.New("slot is no longer available")
	ErrSlotExpired      = errors.New("slot date has passed")
	ErrNoSlotChosen     = errors.New("no slot chosen")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotSubmitting    = errors.New("no submission in progress")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAuthRequired     = errors.New("sign in required")
)

// ValidationError carries per-field messages for the contact form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid booking form: " + strings.Join(keys, ", ")
}

// Unwrap exposes ErrContactRequired when name or phone is at fault.
func (e *ValidationError) Unwrap() error {
	if _, ok := e.Fields["name"]; ok {
		return ErrContactRequired
	}
	if _, ok := e.Fields["phone"]; ok {
		return ErrContactRequired
	}
	return nil
}
