package availability

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/metrics"
)

// WeekView is one week of a photographer's open slots.
type WeekView struct {
	Week     Week
	Today    time.Time
	Slots    []*Slot
	HasPrev  bool
	Degraded bool // the backend failed and Slots is empty
}

// Service answers availability queries.
type Service struct {
	repo  Repository
	cache *WeekCache
	loc   *time.Location
	now   func() time.Time
}

// NewService creates availability service. loc decides what "today" is.
func NewService(repo Repository, cache *WeekCache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, cache: cache, loc: loc, now: time.Now}
}

// Today is the current civil date in the service time zone.
func (s *Service) Today() time.Time {
	return CivilDate(s.now().In(s.loc))
}

// ListWeek returns the open slots of the week containing ref. Weeks before
// the current one are clamped to the current week. A backend failure is
// logged and reported as an empty, degraded view rather than an error.
func (s *Service) ListWeek(ctx context.Context, photographerID uuid.UUID, ref time.Time) (*WeekView, error) {
	if photographerID == uuid.Nil {
		return nil, ErrPhotographerRequired
	}

	today := s.Today()
	week := WeekOf(ref)
	if week.Start.Before(WeekStart(today)) {
		week = WeekOf(today)
	}
	_, prevErr := week.Prev(today)

	view := &WeekView{Week: week, Today: today, HasPrev: prevErr == nil, Slots: []*Slot{}}

	slots, hit := s.cache.Get(ctx, photographerID, week)
	if hit {
		metrics.AvailabilityServed("cache")
	} else {
		var err error
		slots, err = s.repo.ListOpen(ctx, photographerID, week.Start, week.End())
		if err != nil {
			logger.FromContext(ctx).Error().Err(err).
				Str("photographer_id", photographerID.String()).
				Str("week", week.String()).
				Msg("Failed to load availability")
			metrics.AvailabilityServed("error")
			view.Degraded = true
			return view, nil
		}
		metrics.AvailabilityServed("database")
		s.cache.Set(ctx, photographerID, week, slots)
	}

	view.Slots = openSlotsInWeek(slots, week)
	return view, nil
}

// openSlotsInWeek keeps unbooked slots dated inside week, ordered by date then start time.
func openSlotsInWeek(slots []*Slot, week Week) []*Slot {
	out := make([]*Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBooked || !week.Contains(slot.Date) {
			continue
		}
		out = append(out, slot)
	}
	slices.SortStableFunc(out, func(a, b *Slot) int {
		if c := a.Day().Compare(b.Day()); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	return out
}

// GetSlot returns a single slot regardless of its booked state.
func (s *Service) GetSlot(ctx context.Context, id uuid.UUID) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

// InvalidateWeek drops cached availability for the week containing date.
func (s *Service) InvalidateWeek(ctx context.Context, photographerID uuid.UUID, date time.Time) {
	s.cache.Invalidate(ctx, photographerID, date)
}
