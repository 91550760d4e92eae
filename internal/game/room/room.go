package room

import (
	"time"

	"github.com/palemoky/dice-party/internal/game/board"
)

// Status 房间状态
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusPlaying  Status = "PLAYING"
	StatusFinished Status = "FINISHED"
)

// Player 房间中的玩家
// ID 是当前连接 ID，重连时整体替换；SessionID 是稳定身份，一经分配不再变化
type Player struct {
	ID                 string     `json:"id"`
	SessionID          string     `json:"session_id"`
	RoomID             string     `json:"room_id"`
	Name               string     `json:"name"`
	Avatar             string     `json:"avatar,omitempty"`
	Position           int        `json:"position"`
	IsHost             bool       `json:"is_host"`
	IsConnected        bool       `json:"is_connected"`
	JoinedAt           time.Time  `json:"joined_at"`
	LastDisconnectedAt *time.Time `json:"last_disconnected_at,omitempty"`
}

// Room 游戏房间（整份文档读改写，见 Registry）
// Players 的插入顺序就是回合顺序
type Room struct {
	ID          string      `json:"id"`
	Code        string      `json:"code"`
	HostID      string      `json:"host_id"`
	Players     []*Player   `json:"players"`
	MaxPlayers  int         `json:"max_players"`
	Status      Status      `json:"status"`
	CurrentTurn int         `json:"current_turn"`
	Board       board.Board `json:"board"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// FindPlayer 按连接 ID 查找玩家
func (r *Room) FindPlayer(connectionID string) *Player {
	for _, p := range r.Players {
		if p.ID == connectionID {
			return p
		}
	}
	return nil
}

// FindPlayerBySession 按会话 ID 查找玩家
func (r *Room) FindPlayerBySession(sessionID string) *Player {
	for _, p := range r.Players {
		if p.SessionID == sessionID {
			return p
		}
	}
	return nil
}

// CurrentPlayer 当前回合的玩家，仅在 PLAYING 状态有意义
func (r *Room) CurrentPlayer() *Player {
	if len(r.Players) == 0 || r.CurrentTurn < 0 || r.CurrentTurn >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentTurn]
}

// LastTileIndex 终点格索引
func (r *Room) LastTileIndex() int {
	return len(r.Board.Tiles) - 1
}

// ConnectedCount 在线玩家数
func (r *Room) ConnectedCount() int {
	n := 0
	for _, p := range r.Players {
		if p.IsConnected {
			n++
		}
	}
	return n
}
