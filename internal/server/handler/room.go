package handler

import (
	"context"
	"log"
	"strings"

	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "server under maintenance"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	name := strings.TrimSpace(payload.PlayerName)
	if name == "" {
		name = client.GetName() // 连接时分配的随机昵称
	}

	ctx := context.Background()
	r, err := h.registry.CreateRoom(ctx, client.GetID(), name, payload.Avatar)
	if err != nil {
		sendGameError(client, err)
		return
	}

	player := r.FindPlayer(client.GetID())
	client.SetRoom(r.ID)
	client.SetName(name)
	client.SetSessionID(player.SessionID)

	log.Printf("🏠 玩家 %s 创建房间 %s", name, r.Code)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room:      r.ToInfo(),
		SessionID: player.SessionID,
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "server under maintenance"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	ctx := context.Background()

	// 房间码大小写不敏感
	r, err := h.registry.GetRoomByCode(ctx, strings.ToUpper(strings.TrimSpace(payload.RoomCode)))
	if err != nil {
		sendGameError(client, err)
		return
	}

	name := strings.TrimSpace(payload.PlayerName)
	if name == "" {
		name = client.GetName()
	}

	r, err = h.registry.AddPlayer(ctx, r.ID, client.GetID(), name, payload.Avatar)
	if err != nil {
		sendGameError(client, err)
		return
	}

	player := r.FindPlayer(client.GetID())
	client.SetRoom(r.ID)
	client.SetName(name)
	client.SetSessionID(player.SessionID)

	log.Printf("🚪 玩家 %s 加入房间 %s（%d/%d）", name, r.Code, len(r.Players), r.MaxPlayers)

	// 加入者拿到含会话凭证的快照，其余玩家只收普通更新
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room:      r.ToInfo(),
		SessionID: player.SessionID,
	}))
	h.broadcastToRoomExcept(r, player.ID, protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room: r.ToInfo(),
	}))
}

// handleLeaveRoom 处理离开房间（彻底移除，区别于掉线）
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	ctx := context.Background()

	prev, err := h.registry.GetRoom(ctx, roomID)
	if err != nil {
		client.SetRoom("")
		return
	}
	wasHost := prev.HostID == client.GetID()

	r, err := h.registry.RemovePlayer(ctx, roomID, client.GetID())
	if err != nil {
		sendGameError(client, err)
		return
	}

	client.SetRoom("")
	client.SetSessionID("")

	log.Printf("🚶 玩家 %s 离开房间 %s", client.GetName(), prev.Code)

	if len(r.Players) == 0 {
		return
	}

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room: r.ToInfo(),
	}))

	if wasHost && r.HostID != "" {
		if newHost := r.FindPlayer(r.HostID); newHost != nil {
			h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgHostChanged, protocol.HostChangedPayload{
				NewHostID:   newHost.ID,
				NewHostName: newHost.Name,
			}))
		}
	}
}
