package handler

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/palemoky/dice-party/internal/apperrors"
	"github.com/palemoky/dice-party/internal/game/board"
	"github.com/palemoky/dice-party/internal/game/challenge"
	"github.com/palemoky/dice-party/internal/game/room"
	"github.com/palemoky/dice-party/internal/logger"
	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/types"
)

// handleStartGame 处理开始游戏（仅房主）
func (h *Handler) handleStartGame(client types.ClientInterface) {
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
	if r.HostID != client.GetID() {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotHost))
		return
	}

	r, err = h.registry.StartGame(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}

	log.Printf("🎮 房间 %s 游戏开始，%d 名玩家", r.Code, len(r.Players))

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		Room: r.ToInfo(),
	}))
	h.broadcastTurnChanged(r)
}

// handleRollDice 处理掷骰子（仅当前回合玩家）
func (h *Handler) handleRollDice(client types.ClientInterface) {
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

	roll := rand.IntN(6) + 1
	log.Printf("🎲 玩家 %s 掷出 %d（房间 %s）", client.GetName(), roll, r.Code)

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgDiceRolled, protocol.DiceRolledPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
		DiceRoll:   roll,
	}))
}

// handleMovePlayer 处理移动：广播落点，按格子类型派发挑战或进入下一回合
func (h *Handler) handleMovePlayer(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.MovePlayerPayload](msg)
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

	r, tile, err := h.registry.MovePlayer(ctx, roomID, client.GetID(), payload.DiceRoll)
	if err != nil {
		sendGameError(client, err)
		return
	}

	player := r.FindPlayer(client.GetID())
	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgPlayerMoved, protocol.PlayerMovedPayload{
		PlayerID:    player.ID,
		PlayerName:  player.Name,
		NewPosition: player.Position,
		Tile:        room.TileToInfo(tile),
	}))

	// 事件格子派发挑战，回合在挑战结算后才推进；
	// 其余格子（含终点，结束游戏由房主显式触发）直接进入下一回合
	switch tile.Type {
	case board.TileChallenge, board.TileBonus, board.TilePenalty:
		c := h.provider.GetRandomChallenge(ctx, "", challenge.RatingAll)
		if c != nil {
			h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgChallengeStarted, protocol.ChallengeStartedPayload{
				PlayerID:   player.ID,
				PlayerName: player.Name,
				Challenge:  challengeToInfo(c),
			}))
			return
		}
	}

	// 普通格子直接进入下一回合
	h.advanceTurn(ctx, client, roomID)
}

// handleChallengeComplete 处理挑战结算：问答题服务端判分，其余类型自报
func (h *Handler) handleChallengeComplete(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChallengeCompletePayload](msg)
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

	c := h.provider.GetChallenge(ctx, payload.ChallengeID)
	if c == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeChallengeNotFound))
		return
	}

	// 问答题始终由服务端判分，不信任客户端的 success 标记；未作答视为失败
	success := payload.Success
	if c.IsTrivia() {
		success = payload.Answer != nil && h.provider.ValidateTriviaAnswer(ctx, c.ID, *payload.Answer)
	}

	points := 0
	if success {
		points = c.Points
		if err := h.store.AddPoints(ctx, client.GetSessionID(), client.GetName(), points); err != nil {
			logger.LogError("积分写入失败: %v", err)
		}
	}

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgChallengeCompleted, protocol.ChallengeCompletedPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
		Success:    success,
		Points:     points,
	}))

	h.advanceTurn(ctx, client, roomID)
}

// handleEndGame 处理提前结束游戏（仅房主）
func (h *Handler) handleEndGame(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}

	ctx := context.Background()

	r, err := h.registry.FinishGame(ctx, roomID, client.GetID())
	if err != nil {
		sendGameError(client, err)
		return
	}

	log.Printf("🏁 房主 %s 结束了房间 %s 的游戏", client.GetName(), r.Code)

	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		Room: r.ToInfo(),
	}))
}

// advanceTurn 推进回合并广播
func (h *Handler) advanceTurn(ctx context.Context, client types.ClientInterface, roomID string) {
	r, err := h.registry.NextTurn(ctx, roomID)
	if err != nil {
		sendGameError(client, err)
		return
	}
	h.broadcastTurnChanged(r)
}

// requireTurn 校验游戏进行中且操作者是当前回合玩家
func requireTurn(r *room.Room, connectionID string) error {
	if r.Status != room.StatusPlaying {
		return apperrors.ErrGameNotStart
	}
	current := r.CurrentPlayer()
	if current == nil || current.ID != connectionID {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

// challengeToInfo 挑战对外视图，问答题不下发正确答案
func challengeToInfo(c *challenge.Challenge) protocol.ChallengeInfo {
	info := protocol.ChallengeInfo{
		ID:        c.ID,
		Type:      string(c.Type),
		Category:  c.Category,
		AgeRating: string(c.AgeRating),
		Points:    c.Points,
	}
	if c.Trivia != nil {
		info.Question = c.Trivia.Question
		info.Answers = c.Trivia.Answers
	}
	if c.Action != nil {
		info.Action = c.Action.Action
	}
	return info
}
