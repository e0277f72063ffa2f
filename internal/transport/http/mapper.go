package http

import (
	"encoding/json"

	"github.com/akarev/roomchat-server/internal/core"
	"github.com/akarev/roomchat-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.Name == "" {
			return nil, badRequest("room name is required"), nil
		}
		return &core.Command{
			Kind:     core.CommandCreateRoom,
			RoomName: create.Name,
			Password: create.Password,
		}, nil, nil
	case proto.InboundTypeRoomCheck:
		var check proto.RoomCheckData
		if err := json.Unmarshal(inbound.Data, &check); err != nil {
			return nil, nil, err
		}
		if check.RoomID == "" {
			return nil, badRequest("room_id is required"), nil
		}
		return &core.Command{
			Kind:   core.CommandRoomCheck,
			RoomID: check.RoomID,
		}, nil, nil
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" || join.Nickname == "" {
			return nil, badRequest("room_id and nickname are required"), nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			RoomID:   join.RoomID,
			Nickname: join.Nickname,
			Password: join.Password,
		}, nil, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Text == "" {
			return nil, badRequest("text is required"), nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Body: msg.Text,
		}, nil, nil
	case proto.InboundTypeLike:
		var like proto.LikeData
		if err := json.Unmarshal(inbound.Data, &like); err != nil {
			return nil, nil, err
		}
		if like.MessageID == "" {
			return nil, badRequest("message_id is required"), nil
		}
		return &core.Command{
			Kind:      core.CommandToggleLike,
			MessageID: like.MessageID,
		}, nil, nil
	case proto.InboundTypePrivate:
		var private proto.PrivateData
		if err := json.Unmarshal(inbound.Data, &private); err != nil {
			return nil, nil, err
		}
		if private.To == "" {
			return nil, badRequest("to is required"), nil
		}
		return &core.Command{
			Kind:   core.CommandSendPrivate,
			Target: private.To,
			Body:   private.Text,
		}, nil, nil
	case proto.InboundTypeLeave:
		return &core.Command{Kind: core.CommandLeaveRoom}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomCreated:
		return outboundEvent(proto.EventNameRoomCreated, proto.EventRoomCreated{
			RoomID: event.RoomID,
			Name:   event.RoomName,
		})
	case core.EventRoomInfo:
		return outboundEvent(proto.EventNameRoomInfo, proto.EventRoomInfo{
			RoomID:      event.RoomID,
			Name:        event.RoomName,
			HasPassword: event.HasPassword,
		})
	case core.EventRoomNotFound:
		return outboundEvent(proto.EventNameRoomNotFound, proto.EventRoomNotFound{
			RoomID: event.RoomID,
		})
	case core.EventJoined:
		return outboundEvent(proto.EventNameJoined, proto.EventJoined{
			RoomID: event.RoomID,
			Name:   event.RoomName,
		})
	case core.EventChatMessage:
		return outboundEvent(proto.EventNameMessage, proto.EventMessage{
			ID:    event.MessageID,
			User:  event.User,
			Text:  event.Body,
			Likes: event.Likes,
		})
	case core.EventLikesUpdated:
		return outboundEvent(proto.EventNameLikesUpdated, proto.EventLikesUpdated{
			MessageID: event.MessageID,
			Likes:     event.Likes,
		})
	case core.EventPrivateMessage:
		return outboundEvent(proto.EventNamePrivate, proto.EventPrivate{
			From: event.User,
			To:   event.Target,
			Text: event.Body,
		})
	case core.EventUserJoined:
		return outboundEvent(proto.EventNameUserJoined, proto.EventUserJoined{
			User: event.User,
		})
	case core.EventUserLeft:
		return outboundEvent(proto.EventNameUserLeft, proto.EventUserLeft{
			User: event.User,
		})
	case core.EventMemberList:
		return outboundEvent(proto.EventNameMemberList, proto.EventMemberList{
			Users: event.Members,
		})
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func outboundEvent(name string, data any) proto.Outbound {
	return proto.Outbound{
		Type:  proto.OutboundTypeEvent,
		Event: name,
		Data:  data,
	}
}
