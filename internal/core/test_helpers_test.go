package core

import (
	"context"
	"testing"
	"time"
)

func newTestHub(t *testing.T) (*Hub, *Store) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := NewStore()
	hub := NewHub(store, nil)
	go hub.Run(ctx)

	return hub, store
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event received: %+v", ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func mustErrorCode(t *testing.T, ch <-chan *Event, code string) *Event {
	t.Helper()

	ev := mustEvent(t, ch, EventError)
	if ev.Error == nil || ev.Error.Code != code {
		t.Fatalf("expected error code %q, got %+v", code, ev)
	}
	return ev
}

// createRoom drives room creation through the hub and returns the id.
func createRoom(t *testing.T, hub *Hub, name, password string) string {
	t.Helper()

	c := NewClient("creator-" + name)
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandCreateRoom, RoomName: name, Password: password}

	ev := mustEvent(t, c.Events, EventRoomCreated)
	hub.UnregisterClient(c)
	return ev.RoomID
}

// join registers a client and joins it to a room, asserting success.
func join(t *testing.T, hub *Hub, roomID, nick string, password string) *Client {
	t.Helper()

	c := NewClient("conn-" + nick)
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: nick, Password: password}

	ev := mustEvent(t, c.Events, EventJoined)
	if ev.RoomID != roomID {
		t.Fatalf("joined wrong room: %+v", ev)
	}
	return c
}
