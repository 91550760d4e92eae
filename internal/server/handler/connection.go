package handler

import (
	"context"
	"log"

	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/types"
)

// handlePing 处理心跳，回显客户端时间戳用于测算延迟
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		Timestamp: payload.Timestamp,
	}))
}

// handleReconnect 处理断线重连：凭 session_id 找回原玩家身份
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	ctx := context.Background()
	r, player, err := h.registry.ReconnectPlayer(ctx, payload.SessionID, client.GetID())
	if err != nil {
		sendGameError(client, err)
		return
	}

	client.SetRoom(r.ID)
	client.SetName(player.Name)
	client.SetSessionID(player.SessionID)

	log.Printf("📶 玩家 %s 重连到房间 %s", player.Name, r.Code)

	// 重连者拿到完整状态（含会话凭证），其余玩家收到上线通知
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room:      r.ToInfo(),
		SessionID: player.SessionID,
	}))
	h.broadcastToRoomExcept(r, player.ID, protocol.MustNewMessage(protocol.MsgPlayerReconnected, protocol.PlayerReconnectedPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	}))
}

// HandleDisconnect 连接断开时标记玩家离线，必要时转移房主
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	ctx := context.Background()
	r, promoted, err := h.registry.MarkDisconnected(ctx, roomID, client.GetID())
	if err != nil {
		log.Printf("标记掉线失败: %v", err)
		return
	}
	if r == nil {
		return
	}

	log.Printf("📴 玩家 %s 掉线（房间 %s），等待重连", client.GetName(), r.Code)

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgPlayerDisconnected, protocol.PlayerDisconnectedPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))

	if promoted != nil {
		log.Printf("👑 房主转移给 %s（房间 %s）", promoted.Name, r.Code)
		h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgHostChanged, protocol.HostChangedPayload{
			NewHostID:   promoted.ID,
			NewHostName: promoted.Name,
		}))
	}
}
