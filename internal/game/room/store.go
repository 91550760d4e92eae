package room

import (
	"context"

	"github.com/palemoky/dice-party/internal/game/board"
)

// Session 玩家会话映射：稳定身份 → 房间 + 当前连接
type Session struct {
	SessionID    string `json:"session_id"`
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
}

// Store 房间持久化抽象（带按键过期的 KV 存储）
// 缺失的键返回 (nil, nil) / ("", nil)，过期由存储自身负责
type Store interface {
	SaveRoom(ctx context.Context, r *Room) error
	LoadRoom(ctx context.Context, id string) (*Room, error)
	SaveRoomCode(ctx context.Context, code, roomID string) error
	LoadRoomID(ctx context.Context, code string) (string, error)
	SaveSession(ctx context.Context, s *Session) error
	LoadSession(ctx context.Context, sessionID string) (*Session, error)
}

// SpaceSource 自定义格子来源（管理端配置，可能不可用）
type SpaceSource interface {
	GetActiveSpaces(ctx context.Context) ([]board.CustomSpace, error)
}
