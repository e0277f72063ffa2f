package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom allocates a new room.
	CommandCreateRoom CommandKind = iota
	// CommandRoomCheck asks whether a room exists and needs a password.
	CommandRoomCheck
	// CommandJoinRoom requests admission to a room under a nickname.
	CommandJoinRoom
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandToggleLike flips the caller's like on a message.
	CommandToggleLike
	// CommandSendPrivate delivers a direct message to one room member.
	CommandSendPrivate
	// CommandLeaveRoom ends the caller's session in its room.
	CommandLeaveRoom
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	RoomID    string
	RoomName  string
	Nickname  string
	Password  string
	Body      string
	MessageID string
	Target    string
}
