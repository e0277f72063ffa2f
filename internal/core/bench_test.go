package core

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func benchmarkRoomBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore()
	hub := NewHub(store, nil)
	go hub.Run(ctx)

	room := store.CreateRoom("bench", "")

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoinRoom, RoomID: room.ID, Nickname: "sender"}
	<-sender.Events // joined

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: room.ID, Nickname: fmt.Sprintf("client%d", i)}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	// Let the joins settle, then empty the target's backlog so each
	// iteration below is one broadcast in, one event out.
	for ev := range target.Events {
		if ev.Kind == EventJoined {
			break
		}
	}
	time.Sleep(100 * time.Millisecond)
	for {
		select {
		case <-target.Events:
			continue
		default:
		}
		break
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandSendMessage, Body: "payload"}
		for {
			if ev := <-target.Events; ev.Kind == EventChatMessage {
				break
			}
		}
	}
}

func BenchmarkRoomBroadcast_10(b *testing.B)  { benchmarkRoomBroadcast(b, 10) }
func BenchmarkRoomBroadcast_100(b *testing.B) { benchmarkRoomBroadcast(b, 100) }
func BenchmarkRoomBroadcast_500(b *testing.B) { benchmarkRoomBroadcast(b, 500) }
