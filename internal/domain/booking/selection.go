package booking

import (
	"strings"
	"time"

	"github.com/pandalens/pandalens-api/internal/domain/availability"
	"github.com/pandalens/pandalens-api/internal/pkg/validator"
)

// Form is the contact form shown once a slot is chosen.
type Form struct {
	Name                string `json:"name" validate:"notblank,max=100"`
	Phone               string `json:"phone" validate:"notblank,phone"`
	Email               string `json:"email" validate:"omitempty,email"`
	SpecialRequirements string `json:"special_requirements" validate:"max=2000"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:                strings.TrimSpace(f.Name),
		Phone:               strings.TrimSpace(f.Phone),
		Email:               strings.TrimSpace(f.Email),
		SpecialRequirements: strings.TrimSpace(f.SpecialRequirements),
	}
}

// Validate returns a *ValidationError when the form cannot be submitted.
func (f Form) Validate() error {
	if errs := validator.Validate(f); errs != nil {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Contact extracts the contact details stored with the booking.
func (f Form) Contact() ContactInfo {
	return ContactInfo{Name: f.Name, Phone: f.Phone, Email: f.Email}
}

// State of the booking dialog.
type State int

const (
	StateIdle State = iota
	StateSlotChosen
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateSlotChosen:
		return "slot_chosen"
	case StateSubmitting:
		return "submitting"
	}
	return "idle"
}

// Selection models one client's booking dialog:
//
//	Idle -> SlotChosen -> Submitting -> Idle        (success)
//	                                 -> SlotChosen  (failure, manual retry)
//
// Rejected transitions leave the state untouched. Selection is not safe for
// concurrent use.
type Selection struct {
	today time.Time
	state State
	slot  *availability.Slot
	err   error
}

// NewSelection starts an idle dialog; today decides which slots have expired.
func NewSelection(today time.Time) *Selection {
	return &Selection{today: availability.CivilDate(today)}
}

func (s *Selection) State() State             { return s.state }
func (s *Selection) Slot() *availability.Slot { return s.slot }

// LastError is the error of the most recent failed submission.
func (s *Selection) LastError() error { return s.err }

// Choose picks slot. Booked or past slots are refused, so clicking one
// repeatedly never changes anything.
func (s *Selection) Choose(slot *availability.Slot) error {
	if s.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	if slot.IsBooked {
		return ErrSlotUnavailable
	}
	if slot.IsPast(s.today) {
		return ErrSlotExpired
	}
	s.slot = slot
	s.err = nil
	s.state = StateSlotChosen
	return nil
}

// BeginSubmit validates form and moves to Submitting. The normalized form is
// returned for the write.
func (s *Selection) BeginSubmit(form Form) (Form, error) {
	if s.state != StateSlotChosen {
		if s.state == StateSubmitting {
			return Form{}, ErrSubmitInProgress
		}
		return Form{}, ErrNoSlotChosen
	}
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	s.state = StateSubmitting
	return form, nil
}

// Succeed closes the dialog and returns the booked slot so the caller can
// refresh that week's availability.
func (s *Selection) Succeed() (*availability.Slot, error) {
	if s.state != StateSubmitting {
		return nil, ErrNotSubmitting
	}
	booked := s.slot
	s.slot = nil
	s.err = nil
	s.state = StateIdle
	return booked, nil
}

// Fail returns to SlotChosen keeping the slot, so the user can retry by hand.
func (s *Selection) Fail(err error) {
	if s.state != StateSubmitting {
		return
	}
	s.err = err
	s.state = StateSlotChosen
}

// Cancel closes the dialog.
func (s *Selection) Cancel() {
	s.slot = nil
	s.err = nil
	s.state = StateIdle
}
