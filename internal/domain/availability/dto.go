package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/money"
)

// SlotResponse represents a slot in API responses
type SlotResponse struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Weekday      string    `json:"weekday"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	ServiceType  string    `json:"service_type"`
	IsBooked     bool      `json:"is_booked"`
	Expired      bool      `json:"expired"`
	Selectable   bool      `json:"selectable"`
}

// DayResponse groups the week's slots by calendar day.
type DayResponse struct {
	Date    string          `json:"date"`
	Weekday string          `json:"weekday"`
	IsToday bool            `json:"is_today"`
	Expired bool            `json:"expired"`
	Slots   []*SlotResponse `json:"slots"`
}

// WeekResponse is the body of the weekly availability endpoint.
type WeekResponse struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	PrevWeek  *string         `json:"prev_week"`
	NextWeek  string          `json:"next_week"`
	Items     []*SlotResponse `json:"items"`
	Days      []*DayResponse  `json:"days"`
	Degraded  bool            `json:"degraded"`
}

// NewSlotResponse renders slot as seen on today.
func NewSlotResponse(slot *Slot, today time.Time, currency string) *SlotResponse {
	return &SlotResponse{
		ID:           slot.ID,
		Date:         slot.Day().Format(DateLayout),
		Weekday:      slot.Day().Weekday().String(),
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Price:        slot.Price,
		PriceDisplay: money.Format(slot.Price, currency),
		ServiceType:  slot.ServiceType,
		IsBooked:     slot.IsBooked,
		Expired:      slot.IsPast(today),
		Selectable:   slot.Selectable(today),
	}
}

// NewWeekResponse renders a week view.
func NewWeekResponse(view *WeekView, currency string) *WeekResponse {
	resp := &WeekResponse{
		WeekStart: view.Week.Start.Format(DateLayout),
		WeekEnd:   view.Week.End().Format(DateLayout),
		NextWeek:  view.Week.Next().Start.Format(DateLayout),
		Items:     make([]*SlotResponse, 0, len(view.Slots)),
		Degraded:  view.Degraded,
	}
	if view.HasPrev {
		prev := view.Week.Start.AddDate(0, 0, -7).Format(DateLayout)
		resp.PrevWeek = &prev
	}

	byDay := make(map[string]*DayResponse, 7)
	for _, d := range view.Week.Days() {
		day := &DayResponse{
			Date:    d.Format(DateLayout),
			Weekday: d.Weekday().String(),
			IsToday: d.Equal(view.Today),
			Expired: d.Before(view.Today),
			Slots:   []*SlotResponse{},
		}
		byDay[day.Date] = day
		resp.Days = append(resp.Days, day)
	}

	for _, slot := range view.Slots {
		item := NewSlotResponse(slot, view.Today, currency)
		resp.Items = append(resp.Items, item)
		if day, ok := byDay[item.Date]; ok {
			day.Slots = append(day.Slots, item)
		}
	}
	return resp
}
