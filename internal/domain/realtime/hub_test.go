package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func startHub(t *testing.T, instanceID string) *Hub {
	t.Helper()
	hub := NewHubWithInstanceID(nil, instanceID)
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, got %d", want, hub.ConnectionCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receiveEvent(t *testing.T, conn *Connection) Event {
	t.Helper()
	select {
	case data := <-conn.Send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestNotifySessionReachesEveryConnectionOfUser(t *testing.T) {
	hub := startHub(t, "a")
	userID := uuid.New()
	phone := NewConnection(userID, nil)
	laptop := NewConnection(userID, nil)
	stranger := NewConnection(uuid.New(), nil)
	hub.Register(phone)
	hub.Register(laptop)
	hub.Register(stranger)
	waitForConnections(t, hub, 3)

	hub.NotifySession(context.Background(), userID, "SIGNED_OUT")

	for _, conn := range []*Connection{phone, laptop} {
		event := receiveEvent(t, conn)
		if event.Type != "SIGNED_OUT" || event.UserID != userID {
			t.Fatalf("unexpected event %+v", event)
		}
	}
	select {
	case <-stranger.Send:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := startHub(t, "a")
	conn := NewConnection(uuid.New(), nil)
	hub.Register(conn)
	waitForConnections(t, hub, 1)

	hub.Unregister(conn)
	waitForConnections(t, hub, 0)

	if _, ok := <-conn.Send; ok {
		t.Fatal("expected send channel to be closed")
	}
}

func TestEventsFanOutToOtherInstances(t *testing.T) {
	hubA := startHub(t, "a")
	hubB := startHub(t, "b")
	hubA.publishFn = func(_ context.Context, channel string, payload []byte) error {
		if channel != userEventsChannel {
			t.Errorf("unexpected channel %q", channel)
		}
		hubA.handleUserEventPayload(string(payload))
		hubB.handleUserEventPayload(string(payload))
		return nil
	}

	userID := uuid.New()
	onA := NewConnection(userID, nil)
	onB := NewConnection(userID, nil)
	hubA.Register(onA)
	hubB.Register(onB)
	waitForConnections(t, hubA, 1)
	waitForConnections(t, hubB, 1)

	hubA.NotifySession(context.Background(), userID, "TOKEN_REFRESHED")

	if got := receiveEvent(t, onB).Type; got != "TOKEN_REFRESHED" {
		t.Fatalf("expected TOKEN_REFRESHED on other instance, got %q", got)
	}
	if got := receiveEvent(t, onA).Type; got != "TOKEN_REFRESHED" {
		t.Fatalf("expected TOKEN_REFRESHED locally, got %q", got)
	}
	select {
	case <-onA.Send:
		t.Fatal("own publication was delivered twice")
	default:
	}
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := startHub(t, "a")
	userID := uuid.New()
	conn := &Connection{UserID: userID, Send: make(chan []byte, 1)}
	hub.Register(conn)
	waitForConnections(t, hub, 1)

	done := make(chan struct{})
	go func() {
		hub.NotifySession(context.Background(), userID, "SIGNED_IN")
		hub.NotifySession(context.Background(), userID, "SIGNED_OUT")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a full buffer")
	}
	if got := receiveEvent(t, conn).Type; got != "SIGNED_IN" {
		t.Fatalf("expected first event to survive, got %q", got)
	}
}

func TestMalformedFanOutPayloadIsIgnored(t *testing.T) {
	hub := startHub(t, "a")
	conn := NewConnection(uuid.New(), nil)
	hub.Register(conn)
	waitForConnections(t, hub, 1)

	hub.handleUserEventPayload("not json")
	hub.handleUserEventPayload(`{"user_id":"nope","payload":{},"sender_instance_id":"b"}`)

	select {
	case <-conn.Send:
		t.Fatal("malformed payload was delivered")
	default:
	}
}
