package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/akarev/roomchat-server/internal/proto"
)

// One-shot smoke test: create a room, join it, send a message, and
// verify the broadcast comes back.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	nick := flag.String("nick", "tester", "nickname to join with")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	send := func(msgType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", msgType, err)
		}
		return wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload})
	}

	read := func(event string) (json.RawMessage, error) {
		for {
			var outbound struct {
				Type  string          `json:"type"`
				Event string          `json:"event"`
				Data  json.RawMessage `json:"data"`
				Error *proto.Error    `json:"error"`
			}
			if err := wsjson.Read(ctx, conn, &outbound); err != nil {
				return nil, err
			}
			if outbound.Error != nil {
				return nil, fmt.Errorf("server error %s: %s", outbound.Error.Code, outbound.Error.Msg)
			}
			if outbound.Event == event {
				return outbound.Data, nil
			}
		}
	}

	if err := send(proto.InboundTypeCreateRoom, proto.CreateRoomData{Name: "smoke"}); err != nil {
		return err
	}
	raw, err := read(proto.EventNameRoomCreated)
	if err != nil {
		return err
	}
	var created proto.EventRoomCreated
	if err := json.Unmarshal(raw, &created); err != nil {
		return fmt.Errorf("unmarshal room_created: %w", err)
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{RoomID: created.RoomID, Nickname: *nick}); err != nil {
		return err
	}
	if _, err := read(proto.EventNameJoined); err != nil {
		return err
	}

	if err := send(proto.InboundTypeMsg, proto.MsgData{Text: *text}); err != nil {
		return err
	}
	raw, err = read(proto.EventNameMessage)
	if err != nil {
		return err
	}
	var msg proto.EventMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if msg.User != *nick || msg.Text != *text {
		return fmt.Errorf("unexpected echo: %+v", msg)
	}

	fmt.Printf("ok: room %s, message %s delivered\n", created.RoomID, msg.ID)
	return nil
}
