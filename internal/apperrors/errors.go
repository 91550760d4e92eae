package apperrors

import (
	"github.com/palemoky/dice-party/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound      = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "Room not found"}
	ErrRoomFull          = &GameError{Code: protocol.ErrCodeRoomFull, Message: "Room is full"}
	ErrNotInRoom         = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "You are not in a room"}
	ErrGameStarted       = &GameError{Code: protocol.ErrCodeGameStarted, Message: "Game already started"}
	ErrGameNotStart      = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "Game has not started"}
	ErrNotEnoughPlayers  = &GameError{Code: protocol.ErrCodeNotEnoughPlayers, Message: "Need at least 2 players to start"}
	ErrPlayerNotFound    = &GameError{Code: protocol.ErrCodePlayerNotFound, Message: "Player not found"}
	ErrNotYourTurn       = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "Not your turn"}
	ErrNotHost           = &GameError{Code: protocol.ErrCodeNotHost, Message: "Only the host can do that"}
	ErrChallengeNotFound = &GameError{Code: protocol.ErrCodeChallengeNotFound, Message: "Challenge not found"}
	ErrVoteNotFound      = &GameError{Code: protocol.ErrCodeVoteNotFound, Message: "No vote in progress"}
	ErrSessionExpired    = &GameError{Code: protocol.ErrCodeSessionExpired, Message: "Session expired"}
)
