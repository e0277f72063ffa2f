package core

import (
	"testing"
)

func TestCreateAndJoinRoom(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	if _, ok := store.Get(roomID); !ok {
		t.Fatalf("created room %q not in store", roomID)
	}

	alice := join(t, hub, roomID, "alice", "")

	list := mustEvent(t, alice.Events, EventMemberList)
	if len(list.Members) != 1 || list.Members[0] != "alice" {
		t.Fatalf("member list after first join = %v, want [alice]", list.Members)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	hub, _ := newTestHub(t)

	c := NewClient("a")
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: "no-such-room", Nickname: "alice"}

	mustErrorCode(t, c.Events, ErrCodeRoomNotFound)
}

func TestDuplicateNicknameRejected(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	join(t, hub, roomID, "alice", "")

	second := NewClient("b")
	hub.RegisterClient(second)
	second.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: "alice"}

	mustErrorCode(t, second.Events, ErrCodeNicknameTaken)

	room, _ := store.Get(roomID)
	if got := room.MemberList(); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("rejected join mutated membership: %v", got)
	}
}

func TestWrongPassword(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Vault", "secret")

	c := NewClient("a")
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: "alice", Password: "wrong"}
	mustErrorCode(t, c.Events, ErrCodeWrongPassword)

	room, _ := store.Get(roomID)
	if !room.Empty() {
		t.Fatalf("failed join mutated membership: %v", room.MemberList())
	}

	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: "alice", Password: "secret"}
	mustEvent(t, c.Events, EventJoined)
}

func TestRoomCheck(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Vault", "secret")

	c := NewClient("a")
	hub.RegisterClient(c)

	c.Commands <- &Command{Kind: CommandRoomCheck, RoomID: roomID}
	info := mustEvent(t, c.Events, EventRoomInfo)
	if info.RoomName != "Vault" || !info.HasPassword {
		t.Fatalf("unexpected room info: %+v", info)
	}

	c.Commands <- &Command{Kind: CommandRoomCheck, RoomID: "ghost"}
	mustEvent(t, c.Events, EventRoomNotFound)
}

func TestDoubleJoinProducesError(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	otherID := createRoom(t, hub, "Other", "")

	alice := join(t, hub, roomID, "alice", "")
	alice.Commands <- &Command{Kind: CommandJoinRoom, RoomID: otherID, Nickname: "alice"}

	mustErrorCode(t, alice.Events, ErrCodeAlreadyJoined)
}

func TestJoinNotifications(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")

	// Alice sees bob join; the refreshed list contains both, in join order.
	joined := mustEvent(t, alice.Events, EventUserJoined)
	if joined.User != "bob" {
		t.Fatalf("unexpected join notification: %+v", joined)
	}
	list := mustEvent(t, alice.Events, EventMemberList)
	if len(list.Members) != 2 || list.Members[0] != "alice" || list.Members[1] != "bob" {
		t.Fatalf("unexpected member list: %v", list.Members)
	}

	// Bob never sees his own user_joined, but his member list has himself.
	bobList := mustEvent(t, bob.Events, EventMemberList)
	if len(bobList.Members) != 2 {
		t.Fatalf("joiner's member list should include the joiner: %v", bobList.Members)
	}
}

func TestRoomDestroyedWhenLastMemberLeaves(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")

	hub.UnregisterClient(alice)
	waitFor(t, func() bool { return store.Len() == 0 })

	// The id is unreachable afterwards: a later join fails as not found.
	c := NewClient("b")
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: "bob"}
	mustErrorCode(t, c.Events, ErrCodeRoomNotFound)

	if store.Len() != 0 {
		t.Fatalf("store still holds %d rooms", store.Len())
	}
}

func TestLeaveNotifiesRemainingMembers(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")

	alice.Commands <- &Command{Kind: CommandLeaveRoom}

	left := mustEvent(t, bob.Events, EventUserLeft)
	if left.User != "alice" {
		t.Fatalf("unexpected leave notification: %+v", left)
	}
	list := mustEvent(t, bob.Events, EventMemberList)
	if len(list.Members) != 1 || list.Members[0] != "bob" {
		t.Fatalf("unexpected member list after leave: %v", list.Members)
	}

	if _, ok := store.Get(roomID); !ok {
		t.Fatal("room with remaining members was destroyed")
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")

	hub.UnregisterClient(alice)
	hub.UnregisterClient(alice)

	waitFor(t, func() bool { return store.Len() == 0 })
}

func TestChatWithoutSessionIsDropped(t *testing.T) {
	hub, _ := newTestHub(t)

	c := NewClient("a")
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandSendMessage, Body: "hi"}

	mustNoEvent(t, c.Events, EventChatMessage)
	mustNoEvent(t, c.Events, EventError)
}

func TestChatMessageBroadcast(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")

	alice.Commands <- &Command{Kind: CommandSendMessage, Body: "hi"}

	got := mustEvent(t, alice.Events, EventChatMessage)
	bobGot := mustEvent(t, bob.Events, EventChatMessage)

	if got.MessageID == "" || got.MessageID != bobGot.MessageID {
		t.Fatalf("message ids differ: %q vs %q", got.MessageID, bobGot.MessageID)
	}
	if got.User != "alice" || got.Body != "hi" || len(got.Likes) != 0 {
		t.Fatalf("unexpected message event: %+v", got)
	}
}

func TestLikeToggleIsItsOwnInverse(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")

	alice.Commands <- &Command{Kind: CommandSendMessage, Body: "hi"}
	msg := mustEvent(t, bob.Events, EventChatMessage)

	bob.Commands <- &Command{Kind: CommandToggleLike, MessageID: msg.MessageID}

	liked := mustEvent(t, alice.Events, EventLikesUpdated)
	if len(liked.Likes) != 1 || liked.Likes[0] != "bob" {
		t.Fatalf("after first toggle likes = %v, want [bob]", liked.Likes)
	}

	bob.Commands <- &Command{Kind: CommandToggleLike, MessageID: msg.MessageID}

	unliked := mustEvent(t, alice.Events, EventLikesUpdated)
	if len(unliked.Likes) != 0 {
		t.Fatalf("after second toggle likes = %v, want []", unliked.Likes)
	}
}

func TestLikeUnknownMessageIsDropped(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")

	alice.Commands <- &Command{Kind: CommandToggleLike, MessageID: "ghost"}

	mustNoEvent(t, alice.Events, EventLikesUpdated)
	mustNoEvent(t, alice.Events, EventError)
}

func TestPrivateMessageReachesExactlyTwo(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")
	carol := join(t, hub, roomID, "carol", "")

	alice.Commands <- &Command{Kind: CommandSendPrivate, Target: "bob", Body: "psst"}

	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventPrivateMessage)
		if ev.User != "alice" || ev.Target != "bob" || ev.Body != "psst" {
			t.Fatalf("unexpected private message: %+v", ev)
		}
	}

	mustNoEvent(t, carol.Events, EventPrivateMessage)
}

func TestPrivateMessageToUnknownTarget(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")

	alice.Commands <- &Command{Kind: CommandSendPrivate, Target: "nobody", Body: "psst"}

	mustErrorCode(t, alice.Events, ErrCodeTargetNotFound)
}

func TestPrivateMessageStaysInRoom(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	otherID := createRoom(t, hub, "Other", "")

	alice := join(t, hub, roomID, "alice", "")
	join(t, hub, otherID, "bob", "")

	// bob exists, but in another room: not resolvable from alice's room.
	alice.Commands <- &Command{Kind: CommandSendPrivate, Target: "bob", Body: "psst"}

	mustErrorCode(t, alice.Events, ErrCodeTargetNotFound)
}

func TestMessageAuthorSurvivesLeave(t *testing.T) {
	hub, store := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	alice := join(t, hub, roomID, "alice", "")
	bob := join(t, hub, roomID, "bob", "")

	alice.Commands <- &Command{Kind: CommandSendMessage, Body: "bye"}
	msg := mustEvent(t, bob.Events, EventChatMessage)

	hub.UnregisterClient(alice)
	mustEvent(t, bob.Events, EventUserLeft)

	room, _ := store.Get(roomID)
	stored, ok := room.FindMessage(msg.MessageID)
	if !ok || stored.Author != "alice" {
		t.Fatalf("message lost its historical author: %+v", stored)
	}
}

func TestRejoinAfterLeaveCreatesNewSession(t *testing.T) {
	hub, _ := newTestHub(t)

	roomID := createRoom(t, hub, "Lobby", "")
	join(t, hub, roomID, "keeper", "") // keeps the room alive

	alice := join(t, hub, roomID, "alice", "")
	alice.Commands <- &Command{Kind: CommandLeaveRoom}

	// A fresh join on the same connection is a new session, not a resurrection.
	alice.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Nickname: "alice2"}
	ev := mustEvent(t, alice.Events, EventJoined)
	if ev.RoomID != roomID {
		t.Fatalf("rejoin failed: %+v", ev)
	}
}
