package core

// Ledger is a room's append-only message history with an id index for
// O(1) like lookups. It lives and dies with its room.
type Ledger struct {
	messages []*Message
	byID     map[string]*Message
}

func newLedger() *Ledger {
	return &Ledger{byID: make(map[string]*Message)}
}

// Append records a new message and returns it.
func (l *Ledger) Append(id, author, body string) *Message {
	msg := newMessage(id, author, body)
	l.messages = append(l.messages, msg)
	l.byID[id] = msg
	return msg
}

// Find returns the message with the given id, if any.
func (l *Ledger) Find(id string) (*Message, bool) {
	msg, ok := l.byID[id]
	return msg, ok
}

// Len returns the number of recorded messages.
func (l *Ledger) Len() int {
	return len(l.messages)
}
