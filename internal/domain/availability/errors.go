package availability

import "errors"

var (
	ErrPhotographerRequired = errors.New("photographer id is required")
	ErrInvalidWeek          = errors.New("invalid week date")
	ErrWeekBeforeCurrent    = errors.New("cannot navigate before the current week")
	ErrSlotNotFound         = errors.New("availability slot not found")
)
