package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/akarev/roomchat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	nick := flag.String("nick", "cli-user", "nickname")
	roomID := flag.String("room", "", "room id to join (created fresh when empty)")
	roomName := flag.String("name", "cli-room", "room name when creating")
	password := flag.String("password", "", "room password")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", msgType, err)
		}
		return wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload})
	}

	id := *roomID
	if id == "" {
		if err := send(proto.InboundTypeCreateRoom, proto.CreateRoomData{Name: *roomName, Password: *password}); err != nil {
			return err
		}
		created, err := waitForEvent(ctx, conn, proto.EventNameRoomCreated)
		if err != nil {
			return err
		}
		var ev proto.EventRoomCreated
		if err := json.Unmarshal(created, &ev); err != nil {
			return fmt.Errorf("unmarshal room_created: %w", err)
		}
		id = ev.RoomID
		fmt.Printf("Created room %q with id %s\n", ev.Name, id)
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{RoomID: id, Nickname: *nick, Password: *password}); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s\n", *addr, *nick)
	fmt.Println("Type to chat. /like <msg-id>, /dm <nick> <text>, Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, send)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

// waitForEvent reads until the named event arrives, surfacing server errors.
func waitForEvent(ctx context.Context, conn *websocket.Conn, name string) (json.RawMessage, error) {
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
		if outbound.Event == name {
			return outbound.Data, nil
		}
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			log.Printf("marshal outbound data: %v", err)
			continue
		}

		switch outbound.Event {
		case proto.EventNameMessage:
			var evt proto.EventMessage
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			fmt.Printf("%s: %s  (id %s, likes %v)\n", evt.User, evt.Text, evt.ID, evt.Likes)
		case proto.EventNameLikesUpdated:
			var evt proto.EventLikesUpdated
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal likes_updated: %v", err)
				continue
			}
			fmt.Printf("likes on %s: %v\n", evt.MessageID, evt.Likes)
		case proto.EventNamePrivate:
			var evt proto.EventPrivate
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal private: %v", err)
				continue
			}
			fmt.Printf("(dm) %s -> %s: %s\n", evt.From, evt.To, evt.Text)
		case proto.EventNameUserJoined:
			var evt proto.EventUserJoined
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal user_joined: %v", err)
				continue
			}
			fmt.Printf("* %s joined\n", evt.User)
		case proto.EventNameUserLeft:
			var evt proto.EventUserLeft
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal user_left: %v", err)
				continue
			}
			fmt.Printf("* %s left\n", evt.User)
		case proto.EventNameMemberList:
			var evt proto.EventMemberList
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal member_list: %v", err)
				continue
			}
			fmt.Printf("* members: %s\n", strings.Join(evt.Users, ", "))
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}

func writeLoop(ctx context.Context, send func(string, any) error) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			var err error
			switch {
			case strings.HasPrefix(text, "/like "):
				err = send(proto.InboundTypeLike, proto.LikeData{MessageID: strings.TrimSpace(strings.TrimPrefix(text, "/like "))})
			case strings.HasPrefix(text, "/dm "):
				rest := strings.TrimSpace(strings.TrimPrefix(text, "/dm "))
				to, body, found := strings.Cut(rest, " ")
				if !found {
					fmt.Println("usage: /dm <nick> <text>")
					continue
				}
				err = send(proto.InboundTypePrivate, proto.PrivateData{To: to, Text: body})
			default:
				err = send(proto.InboundTypeMsg, proto.MsgData{Text: text})
			}
			if err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}
