package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeCreateRoom = "create_room"
	InboundTypeRoomCheck  = "room_check"
	InboundTypeJoin       = "join"
	InboundTypeMsg        = "msg"
	InboundTypeLike       = "like"
	InboundTypePrivate    = "private"
	InboundTypeLeave      = "leave"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// CreateRoomData requests a new room. An empty password makes it public.
type CreateRoomData struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// RoomCheckData asks whether a room exists before the join screen.
type RoomCheckData struct {
	RoomID string `json:"room_id"`
}

// JoinData requests admission to a room under a nickname.
type JoinData struct {
	RoomID   string `json:"room_id"`
	Nickname string `json:"nickname"`
	Password string `json:"password,omitempty"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	Text string `json:"text"`
}

// LikeData toggles the sender's like on a message.
type LikeData struct {
	MessageID string `json:"message_id"`
}

// PrivateData is a direct message to one member of the sender's room.
type PrivateData struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Outbound event names.
const (
	EventNameRoomCreated  = "room_created"
	EventNameRoomInfo     = "room_info"
	EventNameRoomNotFound = "room_not_found"
	EventNameJoined       = "joined"
	EventNameMessage      = "message"
	EventNameLikesUpdated = "likes_updated"
	EventNamePrivate      = "private"
	EventNameUserJoined   = "user_joined"
	EventNameUserLeft     = "user_left"
	EventNameMemberList   = "member_list"
)

// EventRoomCreated confirms room creation to the requester.
type EventRoomCreated struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

// EventRoomInfo answers a room check for an existing room.
type EventRoomInfo struct {
	RoomID      string `json:"room_id"`
	Name        string `json:"name"`
	HasPassword bool   `json:"has_password"`
}

// EventRoomNotFound answers a room check for an unknown id.
type EventRoomNotFound struct {
	RoomID string `json:"room_id"`
}

// EventJoined confirms a successful join.
type EventJoined struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

// EventMessage is a chat message broadcast to the whole room.
type EventMessage struct {
	ID    string   `json:"id"`
	User  string   `json:"user"`
	Text  string   `json:"text"`
	Likes []string `json:"likes"`
}

// EventLikesUpdated carries the full like set of a message after a toggle.
type EventLikesUpdated struct {
	MessageID string   `json:"message_id"`
	Likes     []string `json:"likes"`
}

// EventPrivate is delivered to the sender and the target only.
type EventPrivate struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// EventUserJoined notifies that a user joined the room.
type EventUserJoined struct {
	User string `json:"user"`
}

// EventUserLeft notifies that a user left the room.
type EventUserLeft struct {
	User string `json:"user"`
}

// EventMemberList is the ordered snapshot of current nicknames.
type EventMemberList struct {
	Users []string `json:"users"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
