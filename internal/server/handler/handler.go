package handler

import (
	"errors"
	"log"

	"github.com/palemoky/dice-party/internal/apperrors"
	"github.com/palemoky/dice-party/internal/config"
	"github.com/palemoky/dice-party/internal/game/challenge"
	"github.com/palemoky/dice-party/internal/game/room"
	"github.com/palemoky/dice-party/internal/protocol"
	"github.com/palemoky/dice-party/internal/server/storage"
	"github.com/palemoky/dice-party/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server   types.ServerInterface
	Registry *room.Registry
	Provider *challenge.Provider
	Store    *storage.RedisStore
	Game     *config.GameConfig
}

// Handler 消息处理器
type Handler struct {
	server   types.ServerInterface
	registry *room.Registry
	provider *challenge.Provider
	store    *storage.RedisStore
	game     *config.GameConfig
	handlers map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:   deps.Server,
		registry: deps.Registry,
		provider: deps.Provider,
		store:    deps.Store,
		game:     deps.Game,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:      h.handlePing,
		protocol.MsgReconnect: h.handleReconnect,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },

		// 游戏操作
		protocol.MsgStartGame:         func(c types.ClientInterface, _ *protocol.Message) { h.handleStartGame(c) },
		protocol.MsgRollDice:          func(c types.ClientInterface, _ *protocol.Message) { h.handleRollDice(c) },
		protocol.MsgMovePlayer:        h.handleMovePlayer,
		protocol.MsgChallengeComplete: h.handleChallengeComplete,
		protocol.MsgEndGame:           func(c types.ClientInterface, _ *protocol.Message) { h.handleEndGame(c) },

		// 投票操作
		protocol.MsgStartVote: h.handleStartVote,
		protocol.MsgCastVote:  h.handleCastVote,

		// 信息查询
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
}

// sendGameError 统一的错误下发
func sendGameError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// broadcastToRoom 向房间内所有在线玩家广播消息
func (h *Handler) broadcastToRoom(r *room.Room, msg *protocol.Message) {
	for _, p := range r.Players {
		if !p.IsConnected {
			continue
		}
		if c := h.server.GetClientByID(p.ID); c != nil {
			c.SendMessage(msg)
		}
	}
}

// broadcastToRoomExcept 向除指定玩家外的在线玩家广播消息
func (h *Handler) broadcastToRoomExcept(r *room.Room, exceptID string, msg *protocol.Message) {
	for _, p := range r.Players {
		if !p.IsConnected || p.ID == exceptID {
			continue
		}
		if c := h.server.GetClientByID(p.ID); c != nil {
			c.SendMessage(msg)
		}
	}
}

// broadcastTurnChanged 广播回合变更
func (h *Handler) broadcastTurnChanged(r *room.Room) {
	current := r.CurrentPlayer()
	if current == nil {
		return
	}
	h.broadcastToRoom(r, protocol.MustNewMessage(protocol.MsgTurnChanged, protocol.TurnChangedPayload{
		CurrentTurn: r.CurrentTurn,
		PlayerID:    current.ID,
		PlayerName:  current.Name,
		TurnTimeout: h.game.TurnTimeout,
	}))
}
