package core

import "sort"

// Message is the domain model for a chat message. Author is the sender's
// nickname at the time of sending and is never re-resolved, so the name
// survives the author leaving the room.
type Message struct {
	ID     string
	Author string
	Body   string
	likes  map[string]struct{}
}

func newMessage(id, author, body string) *Message {
	return &Message{
		ID:     id,
		Author: author,
		Body:   body,
		likes:  make(map[string]struct{}),
	}
}

// ToggleLike flips nick's membership in the like set and returns the
// updated set. Two toggles by the same nick restore the original set.
func (m *Message) ToggleLike(nick string) []string {
	if _, ok := m.likes[nick]; ok {
		delete(m.likes, nick)
	} else {
		m.likes[nick] = struct{}{}
	}
	return m.Likes()
}

// Likes returns the like set as a sorted slice so payloads are stable.
func (m *Message) Likes() []string {
	out := make([]string, 0, len(m.likes))
	for nick := range m.likes {
		out = append(out, nick)
	}
	sort.Strings(out)
	return out
}
