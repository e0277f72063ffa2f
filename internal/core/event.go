package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated confirms room creation to the requester.
	EventRoomCreated EventKind = iota
	// EventRoomInfo answers a room check with name and password flag.
	EventRoomInfo
	// EventRoomNotFound answers a room check for an unknown id.
	EventRoomNotFound
	// EventJoined confirms a successful join to the joiner.
	EventJoined
	// EventChatMessage notifies room members about a chat message.
	EventChatMessage
	// EventLikesUpdated carries the full like set of a message after a toggle.
	EventLikesUpdated
	// EventPrivateMessage is delivered to exactly the sender and the target.
	EventPrivateMessage
	// EventUserJoined notifies existing members that a user joined.
	EventUserJoined
	// EventUserLeft notifies remaining members that a user left.
	EventUserLeft
	// EventMemberList carries an ordered snapshot of current nicknames.
	EventMemberList
	// EventError notifies the originating client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// Only the fields relevant to the Kind are populated.
type Event struct {
	Kind        EventKind
	RoomID      string
	RoomName    string
	HasPassword bool
	User        string
	Target      string
	Body        string
	MessageID   string
	Likes       []string
	Members     []string
	Error       *CoreError
}
