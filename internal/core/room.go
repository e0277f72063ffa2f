package core

// Room groups the clients admitted to one chat room together with its
// message ledger. Rooms are mutated only on the hub goroutine.
type Room struct {
	ID   string
	Name string

	password string
	members  map[*Client]string
	order    []*Client
	ledger   *Ledger
}

func newRoom(id, name, password string) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		password: password,
		members:  make(map[*Client]string),
		ledger:   newLedger(),
	}
}

// HasPassword reports whether the room is password protected.
func (r *Room) HasPassword() bool {
	return r.password != ""
}

// PasswordMatches reports whether the supplied password admits a joiner.
// Public rooms admit any password, including none.
func (r *Room) PasswordMatches(password string) bool {
	return r.password == "" || r.password == password
}

// NicknameTaken reports whether nick is already used by a current member.
// Exact, case-sensitive match, computed off the membership map itself so
// it cannot drift from it.
func (r *Room) NicknameTaken(nick string) bool {
	for _, existing := range r.members {
		if existing == nick {
			return true
		}
	}
	return false
}

// AddMember admits a client under nick. Returns false if the client is
// already a member.
func (r *Room) AddMember(c *Client, nick string) bool {
	if _, exists := r.members[c]; exists {
		return false
	}
	r.members[c] = nick
	r.order = append(r.order, c)
	return true
}

// RemoveMember evicts a client, returning the nickname it held.
func (r *Room) RemoveMember(c *Client) (string, bool) {
	nick, exists := r.members[c]
	if !exists {
		return "", false
	}
	delete(r.members, c)
	for i, member := range r.order {
		if member == c {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nick, true
}

// MemberList returns the current nicknames in join order.
func (r *Room) MemberList() []string {
	out := make([]string, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, r.members[c])
	}
	return out
}

// FindByNickname resolves a nickname to the member holding it.
func (r *Room) FindByNickname(nick string) (*Client, bool) {
	for c, existing := range r.members {
		if existing == nick {
			return c, true
		}
	}
	return nil, false
}

// Broadcast sends an event to all members, optionally excluding one.
func (r *Room) Broadcast(ev *Event, exclude *Client) {
	for c := range r.members {
		if c == exclude {
			continue
		}
		c.deliver(ev)
	}
}

// AppendMessage records a chat message in the room's ledger.
func (r *Room) AppendMessage(id, author, body string) *Message {
	return r.ledger.Append(id, author, body)
}

// FindMessage looks up a ledger message by id.
func (r *Room) FindMessage(id string) (*Message, bool) {
	return r.ledger.Find(id)
}

// Empty returns true if no members remain.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}
