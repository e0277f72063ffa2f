package core

// Client is a connected peer as seen by the core layer. The transport
// creates one per websocket connection and owns both channels: it writes
// Commands and drains Events.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// Close releases the command channel. Must only be called after the
// transport has stopped writing commands and unregistered the client.
func (c *Client) Close() {
	close(c.Commands)
}

// deliver hands an event to the client without blocking the hub loop.
func (c *Client) deliver(ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
