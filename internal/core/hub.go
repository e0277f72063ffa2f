package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// session binds a connected client to the room and nickname it joined
// under. It exists from a successful join until leave or disconnect.
type session struct {
	room *Room
	nick string
}

// envelope pairs a command with the client that issued it.
type envelope struct {
	client *Client
	cmd    *Command
}

// Hub is the session coordinator. All commands from all clients funnel
// into one queue and are processed to completion one at a time, so no
// room mutation can be preempted mid-update.
type Hub struct {
	store      *Store
	log        *zerolog.Logger
	queue      chan envelope
	register   chan *Client
	unregister chan *Client
	sessions   map[*Client]*session
}

// NewHub constructs the coordinator over a room store.
func NewHub(store *Store, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		store:      store,
		log:        logger,
		queue:      make(chan envelope, 256),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		sessions:   make(map[*Client]*session),
	}
}

// RegisterClient announces a new connection to the hub. The hub starts
// consuming the client's command channel.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient reports that a connection closed. Safe to call more
// than once; the second call finds no session and does nothing.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.handleLeave(c)
		case env := <-h.queue:
			h.dispatch(env.client, env.cmd)
		}
	}
}

// pump forwards one client's commands into the shared queue, preserving
// per-connection arrival order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.queue <- envelope{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandCreateRoom:
		h.handleCreateRoom(c, cmd)
	case CommandRoomCheck:
		h.handleRoomCheck(c, cmd)
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandSendMessage:
		h.handleMessage(c, cmd)
	case CommandToggleLike:
		h.handleToggleLike(c, cmd)
	case CommandSendPrivate:
		h.handlePrivate(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c)
	default:
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}

func (h *Hub) handleCreateRoom(c *Client, cmd *Command) {
	room := h.store.CreateRoom(cmd.RoomName, cmd.Password)

	h.log.Info().
		Str("room_id", room.ID).
		Str("room_name", room.Name).
		Bool("has_password", room.HasPassword()).
		Msg("room created")

	c.deliver(&Event{Kind: EventRoomCreated, RoomID: room.ID, RoomName: room.Name})
}

func (h *Hub) handleRoomCheck(c *Client, cmd *Command) {
	name, hasPassword, ok := h.store.Describe(cmd.RoomID)
	if !ok {
		c.deliver(&Event{Kind: EventRoomNotFound, RoomID: cmd.RoomID})
		return
	}
	c.deliver(&Event{Kind: EventRoomInfo, RoomID: cmd.RoomID, RoomName: name, HasPassword: hasPassword})
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if _, joined := h.sessions[c]; joined {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, "already joined a room")})
		return
	}

	room, ok := h.store.Get(cmd.RoomID)
	if !ok {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeRoomNotFound, "room not found")})
		return
	}
	if !room.PasswordMatches(cmd.Password) {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeWrongPassword, "wrong password")})
		return
	}
	if room.NicknameTaken(cmd.Nickname) {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeNicknameTaken, "nickname already taken")})
		return
	}

	// Membership first, so the member list snapshot below already
	// includes the joiner.
	room.AddMember(c, cmd.Nickname)
	h.sessions[c] = &session{room: room, nick: cmd.Nickname}

	h.log.Info().
		Str("room_id", room.ID).
		Str("nickname", cmd.Nickname).
		Int("members", len(room.MemberList())).
		Msg("user joined room")

	c.deliver(&Event{Kind: EventJoined, RoomID: room.ID, RoomName: room.Name})
	room.Broadcast(&Event{Kind: EventUserJoined, RoomID: room.ID, User: cmd.Nickname}, c)
	room.Broadcast(&Event{Kind: EventMemberList, RoomID: room.ID, Members: room.MemberList()}, nil)
}

func (h *Hub) handleMessage(c *Client, cmd *Command) {
	sess, ok := h.sessions[c]
	if !ok {
		// Actions from connections without a session are ignored.
		h.log.Debug().Str("client_id", c.ID).Msg("chat message without session dropped")
		return
	}

	msg := sess.room.AppendMessage(uuid.NewString(), sess.nick, cmd.Body)

	sess.room.Broadcast(&Event{
		Kind:      EventChatMessage,
		RoomID:    sess.room.ID,
		MessageID: msg.ID,
		User:      msg.Author,
		Body:      msg.Body,
		Likes:     msg.Likes(),
	}, nil)
}

func (h *Hub) handleToggleLike(c *Client, cmd *Command) {
	sess, ok := h.sessions[c]
	if !ok {
		h.log.Debug().Str("client_id", c.ID).Msg("like toggle without session dropped")
		return
	}

	msg, ok := sess.room.FindMessage(cmd.MessageID)
	if !ok {
		h.log.Debug().
			Str("client_id", c.ID).
			Str("message_id", cmd.MessageID).
			Msg("like toggle on unknown message dropped")
		return
	}

	likes := msg.ToggleLike(sess.nick)

	sess.room.Broadcast(&Event{
		Kind:      EventLikesUpdated,
		RoomID:    sess.room.ID,
		MessageID: msg.ID,
		Likes:     likes,
	}, nil)
}

func (h *Hub) handlePrivate(c *Client, cmd *Command) {
	sess, ok := h.sessions[c]
	if !ok {
		h.log.Debug().Str("client_id", c.ID).Msg("private message without session dropped")
		return
	}

	target, ok := sess.room.FindByNickname(cmd.Target)
	if !ok {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeTargetNotFound, "recipient is not in the room")})
		return
	}

	ev := &Event{
		Kind:   EventPrivateMessage,
		RoomID: sess.room.ID,
		User:   sess.nick,
		Target: cmd.Target,
		Body:   cmd.Body,
	}

	target.deliver(ev)
	if target != c {
		// Echo back to the sender; never room-wide.
		c.deliver(ev)
	}
}

func (h *Hub) handleLeave(c *Client) {
	sess, ok := h.sessions[c]
	if !ok {
		return
	}
	delete(h.sessions, c)

	room := sess.room
	nick, ok := room.RemoveMember(c)
	if !ok {
		// Membership already gone; treat as cleaned up.
		return
	}

	if room.Empty() {
		h.store.Destroy(room.ID)
		h.log.Info().Str("room_id", room.ID).Msg("room destroyed, last member left")
		return
	}

	h.log.Info().
		Str("room_id", room.ID).
		Str("nickname", nick).
		Msg("user left room")

	room.Broadcast(&Event{Kind: EventUserLeft, RoomID: room.ID, User: nick}, nil)
	room.Broadcast(&Event{Kind: EventMemberList, RoomID: room.ID, Members: room.MemberList()}, nil)
}
