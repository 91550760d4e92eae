package handler

import (
	"context"
	"log"

	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/types"
)

// handleGetLeaderboard 处理积分榜查询
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	entries, err := h.store.TopPlayers(context.Background(), payload.Limit)
	if err != nil {
		log.Printf("积分榜查询失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Entries: entries,
	}))
}
