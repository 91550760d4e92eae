package handler

import (
	"context"
	"log"

	"github.com/palemoky/dice-party/internal/game/vote"
	"github.com/palemoky/dice-party/internal/logger"
	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/types"
)

// handleStartVote 发起群体裁决：当前回合玩家请其他人投票判定挑战成败
func (h *Handler) handleStartVote(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartVotePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	roomID := client.GetRoom()
	if roomID == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	ctx := context.Background()

	r, err := h.registry.GetRoom(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}
	if err := requireTurn(r, client.GetID()); err != nil {
		sendGameError(client, err)
		return
	}

	// 挑战者本人不投票
	totalVoters := r.ConnectedCount() - 1
	if totalVoters < 0 {
		totalVoters = 0
	}

	session := vote.NewSession(roomID, client.GetID(), client.GetName(), payload.ChallengeID, totalVoters)
	if err := h.store.SaveVote(ctx, session); err != nil {
		sendGameError(client, err)
		return
	}

	log.Printf("🗳️ 玩家 %s 发起投票（房间 %s，%d 名评审）", client.GetName(), r.Code, totalVoters)

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgVoteStarted, protocol.VoteStartedPayload{
		PlayerID:    client.GetID(),
		PlayerName:  client.GetName(),
		ChallengeID: payload.ChallengeID,
		TotalVoters: totalVoters,
	}))

	// 没有其他在线玩家可投票时立即结算（零票视为失败）
	if session.IsComplete() {
		h.resolveVote(ctx, client, r.ID, session)
	}
}

// handleCastVote 处理投票，重复投票覆盖旧票
func (h *Handler) handleCastVote(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CastVotePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	roomID := client.GetRoom()
	if roomID == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	ctx := context.Background()

	session, err := h.store.LoadVote(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}
	if session == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeVoteNotFound))
		return
	}

	// 挑战者不能给自己投票
	if session.PlayerID == client.GetID() {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	session.Cast(client.GetID(), payload.Vote)
	if err := h.store.SaveVote(ctx, session); err != nil {
		sendGameError(client, err)
		return
	}

	r, err := h.registry.GetRoom(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgVoteUpdate, protocol.VoteUpdatePayload{
		VotesCast:   len(session.Votes),
		TotalVoters: session.TotalVoters,
	}))

	if session.IsComplete() {
		h.resolveVote(ctx, client, roomID, session)
	}
}

// resolveVote 结算投票：广播结果、发放积分、推进回合
func (h *Handler) resolveVote(ctx context.Context, client types.ClientInterface, roomID string, session *vote.Session) {
	success, yes, no := session.Result()

	if err := h.store.DeleteVote(ctx, roomID); err != nil {
		logger.LogError("删除投票会话失败: %v", err)
	}

	r, err := h.registry.GetRoom(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	log.Printf("🗳️ 投票结束（房间 %s）：%d 赞成 / %d 反对，挑战%s",
		r.Code, yes, no, map[bool]string{true: "成功", false: "失败"}[success])

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgVoteResult, protocol.VoteResultPayload{
		PlayerID: session.PlayerID,
		Success:  success,
		YesVotes: yes,
		NoVotes:  no,
	}))

	points := 0
	if success {
		if c := h.provider.GetChallenge(ctx, session.ChallengeID); c != nil {
			points = c.Points
		}
		if points > 0 {
			if p := r.FindPlayer(session.PlayerID); p != nil {
				if err := h.store.AddPoints(ctx, p.SessionID, session.PlayerName, points); err != nil {
					logger.LogError("积分写入失败: %v", err)
				}
			}
		}
	}

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgChallengeCompleted, protocol.ChallengeCompletedPayload{
		PlayerID:   session.PlayerID,
		PlayerName: session.PlayerName,
		Success:    success,
		Points:     points,
	}))

	h.advanceTurn(ctx, client, roomID)
}
