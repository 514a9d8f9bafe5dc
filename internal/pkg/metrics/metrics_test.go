package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingResultIncrementsLabel(t *testing.T) {
	before := testutil.ToFloat64(bookings.WithLabelValues(BookingCreated))
	BookingResult(BookingCreated)
	after := testutil.ToFloat64(bookings.WithLabelValues(BookingCreated))

	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v -> %v", before, after)
	}
}

func TestFollowToggledIncrementsLabel(t *testing.T) {
	before := testutil.ToFloat64(followToggles.WithLabelValues("follow"))
	FollowToggled("follow")
	if got := testutil.ToFloat64(followToggles.WithLabelValues("follow")); got-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", got-before)
	}
}
