package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/domain/availability"
	"github.com/pandalens/pandalens-api/internal/pkg/email"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

type fakeSlots struct {
	slots       map[uuid.UUID]*availability.Slot
	reads       int
	invalidated []time.Time
}

func (f *fakeSlots) GetSlot(ctx context.Context, id uuid.UUID) (*availability.Slot, error) {
	f.reads++
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, availability.ErrSlotNotFound
}

func (f *fakeSlots) Today() time.Time { return testToday }

func (f *fakeSlots) InvalidateWeek(ctx context.Context, photographerID uuid.UUID, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

// fakeRepo keeps slot rows and bookings in memory. Writes made inside InTx
// only become visible when fn returns nil.
type fakeRepo struct {
	rows      map[uuid.UUID]*LockedSlot
	bookings  []*Booking
	ops       []string
	txCount   int
	markErr   error
	insertErr error
}

func newFakeRepo(slots ...*availability.Slot) *fakeRepo {
	r := &fakeRepo{rows: map[uuid.UUID]*LockedSlot{}}
	for _, s := range slots {
		r.rows[s.ID] = &LockedSlot{ID: s.ID, PhotographerID: s.PhotographerID, Price: s.Price, IsBooked: s.IsBooked}
	}
	return r
}

type fakeTx struct {
	repo     *fakeRepo
	inserted []*Booking
	marked   []uuid.UUID
}

func (t *fakeTx) LockSlot(ctx context.Context, slotID uuid.UUID) (*LockedSlot, error) {
	t.repo.ops = append(t.repo.ops, "lock")
	row, ok := t.repo.rows[slotID]
	if !ok {
		return nil, ErrSlotNotFound
	}
	copied := *row
	return &copied, nil
}

func (t *fakeTx) InsertBooking(ctx context.Context, b *Booking) error {
	t.repo.ops = append(t.repo.ops, "insert")
	if t.repo.insertErr != nil {
		return t.repo.insertErr
	}
	b.CreatedAt = testToday
	t.inserted = append(t.inserted, b)
	return nil
}

func (t *fakeTx) MarkSlotBooked(ctx context.Context, slotID uuid.UUID) error {
	t.repo.ops = append(t.repo.ops, "mark")
	if t.repo.markErr != nil {
		return t.repo.markErr
	}
	if t.repo.rows[slotID].IsBooked {
		return ErrSlotUnavailable
	}
	t.marked = append(t.marked, slotID)
	return nil
}

func (r *fakeRepo) InTx(ctx context.Context, fn func(tx Tx) error) error {
	r.txCount++
	tx := &fakeTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}
	r.bookings = append(r.bookings, tx.inserted...)
	for _, id := range tx.marked {
		r.rows[id].IsBooked = true
	}
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.OwnedBy(userID) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePublisher struct {
	keys     []string
	payloads []any
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func TestSubmitWritesBookingThenFlagsSlot(t *testing.T) {
	slot := openSlot()
	slots := &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}
	repo := newFakeRepo(slot)
	pub := &fakePublisher{}
	svc := NewService(repo, slots, nil, pub)

	b, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := []string{"lock", "insert", "mark"}
	if len(repo.ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, repo.ops)
	}
	for i := range want {
		if repo.ops[i] != want[i] {
			t.Fatalf("expected ops %v, got %v", want, repo.ops)
		}
	}

	if len(repo.bookings) != 1 {
		t.Fatalf("expected exactly one booking, got %d", len(repo.bookings))
	}
	if !repo.rows[slot.ID].IsBooked {
		t.Fatalf("slot must be flagged booked")
	}
	if b.Status != StatusPending || b.TotalPrice != 80000 || b.PhotographerID != slot.PhotographerID {
		t.Fatalf("unexpected booking %+v", b)
	}
	if !b.IsGuest() {
		t.Fatalf("guest booking must have no user id")
	}
	if len(slots.invalidated) != 1 || !slots.invalidated[0].Equal(slot.Date) {
		t.Fatalf("expected availability refresh for %s, got %v", slot.Date, slots.invalidated)
	}
	if len(pub.keys) != 1 || pub.keys[0] != EventBookingCreated {
		t.Fatalf("expected booking.created, got %v", pub.keys)
	}
}

func TestSubmitRecordsSignedInUser(t *testing.T) {
	slot := openSlot()
	repo := newFakeRepo(slot)
	svc := NewService(repo, &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}, nil, nil)

	userID := uuid.New()
	requester := RequesterFrom(&session.Session{UserID: userID})

	b, err := svc.Submit(context.Background(), requester, slot.ID, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !b.OwnedBy(userID) {
		t.Fatalf("expected booking owned by %s", userID)
	}

	mine, _ := svc.ListMine(context.Background(), &session.Session{UserID: userID})
	if len(mine) != 1 {
		t.Fatalf("expected one booking listed, got %d", len(mine))
	}
}

func TestSubmitInvalidFormWritesNothing(t *testing.T) {
	slot := openSlot()
	slots := &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}
	repo := newFakeRepo(slot)
	svc := NewService(repo, slots, nil, nil)

	for _, form := range []Form{{Phone: "13800138000"}, {Name: "Li Wei"}, {Name: " ", Phone: " "}} {
		_, err := svc.Submit(context.Background(), Requester{}, slot.ID, form)
		if !errors.Is(err, ErrContactRequired) {
			t.Fatalf("form %+v: expected ErrContactRequired, got %v", form, err)
		}
	}
	if slots.reads != 0 || repo.txCount != 0 || len(repo.bookings) != 0 {
		t.Fatalf("validation failure must not touch storage: reads=%d tx=%d", slots.reads, repo.txCount)
	}
}

func TestSubmitBookedSlotIsRejected(t *testing.T) {
	slot := openSlot()
	slot.IsBooked = true
	repo := newFakeRepo(slot)
	svc := NewService(repo, &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm()); !errors.Is(err, ErrSlotUnavailable) {
			t.Fatalf("expected ErrSlotUnavailable, got %v", err)
		}
	}
	if repo.txCount != 0 {
		t.Fatalf("booked slot must not open a transaction")
	}
}

func TestSubmitLosesRaceAtRowLock(t *testing.T) {
	slot := openSlot()
	repo := newFakeRepo(slot)
	repo.rows[slot.ID].IsBooked = true // booked by someone else after the read
	svc := NewService(repo, &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}, nil, nil)

	_, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm())
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if len(repo.ops) != 1 || len(repo.bookings) != 0 {
		t.Fatalf("expected only the lock, got %v", repo.ops)
	}
}

func TestSubmitRollsBackWhenSlotFlagFails(t *testing.T) {
	slot := openSlot()
	repo := newFakeRepo(slot)
	repo.markErr = errors.New("connection reset")
	slots := &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}
	pub := &fakePublisher{}
	svc := NewService(repo, slots, nil, pub)

	if _, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm()); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.bookings) != 0 || repo.rows[slot.ID].IsBooked {
		t.Fatalf("partial write committed")
	}
	if len(slots.invalidated) != 0 || len(pub.keys) != 0 {
		t.Fatalf("failed submission must not refresh or publish")
	}
}

func TestSubmitMissingSlot(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeSlots{}, nil, nil)

	if _, err := svc.Submit(context.Background(), Requester{}, uuid.New(), validForm()); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestSubmitSucceedsWhenPublishFails(t *testing.T) {
	slot := openSlot()
	repo := newFakeRepo(slot)
	svc := NewService(repo, &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}, nil, &fakePublisher{err: errors.New("broker down")})

	if _, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm()); err != nil {
		t.Fatalf("publish failure must not fail the booking: %v", err)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected booking committed")
	}
}

func TestGetHidesOtherUsersBookings(t *testing.T) {
	slot := openSlot()
	repo := newFakeRepo(slot)
	svc := NewService(repo, &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot}}, nil, nil)

	owner := uuid.New()
	b, err := svc.Submit(context.Background(), Requester{UserID: &owner}, slot.ID, validForm())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Get(context.Background(), &session.Session{UserID: owner}, b.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(context.Background(), &session.Session{UserID: uuid.New()}, b.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), nil, b.ID); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

type fakeMailer struct {
	to   []string
	sent []email.BookingRequested
}

func (m *fakeMailer) SendBookingRequested(to string, data email.BookingRequested) {
	m.to = append(m.to, to)
	m.sent = append(m.sent, data)
}

func TestSubmitMailsConfirmationOnlyWithEmail(t *testing.T) {
	slot := openSlot()
	second := openSlot()
	repo := newFakeRepo(slot, second)
	mailer := &fakeMailer{}
	slots := &fakeSlots{slots: map[uuid.UUID]*availability.Slot{slot.ID: slot, second.ID: second}}
	svc := NewService(repo, slots, nil, nil).WithMailer(mailer)

	if _, err := svc.Submit(context.Background(), Requester{}, slot.ID, validForm()); err != nil {
		t.Fatalf("submit without email: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no email address, nothing should be sent")
	}

	form := validForm()
	form.Email = "li.wei@example.com"
	if _, err := svc.Submit(context.Background(), Requester{}, second.ID, form); err != nil {
		t.Fatalf("submit with email: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.to[0] != "li.wei@example.com" {
		t.Fatalf("expected one confirmation, got %v", mailer.to)
	}
	got := mailer.sent[0]
	if got.StartTime != "10:00" || got.EndTime != "11:00" || got.TotalPrice != 80000 || got.Name != "Li Wei" {
		t.Fatalf("unexpected confirmation %+v", got)
	}
}
