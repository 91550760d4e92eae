package room

import (
	"github.com/palemoky/dice-party/internal/game/board"
	"github.com/palemoky/dice-party/internal/protocol"
)

// ToInfo 将 Room 转换为对外的 RoomInfo
func (r *Room) ToInfo() protocol.RoomInfo {
	info := protocol.RoomInfo{
		ID:          r.ID,
		Code:        r.Code,
		HostID:      r.HostID,
		Status:      string(r.Status),
		MaxPlayers:  r.MaxPlayers,
		CurrentTurn: r.CurrentTurn,
		Players:     make([]protocol.PlayerInfo, 0, len(r.Players)),
		Board: &protocol.BoardInfo{
			Seed:  r.Board.Seed,
			Tiles: make([]protocol.TileInfo, 0, len(r.Board.Tiles)),
		},
	}

	for _, p := range r.Players {
		info.Players = append(info.Players, p.ToInfo())
	}
	for _, t := range r.Board.Tiles {
		info.Board.Tiles = append(info.Board.Tiles, TileToInfo(t))
	}

	return info
}

// ToInfo 将 Player 转换为对外的 PlayerInfo
// 注意：不含 SessionID，会话 ID 只发给玩家本人
func (p *Player) ToInfo() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:          p.ID,
		Name:        p.Name,
		Avatar:      p.Avatar,
		Position:    p.Position,
		IsHost:      p.IsHost,
		IsConnected: p.IsConnected,
	}
}

// TileToInfo 将格子转换为对外的 TileInfo
func TileToInfo(t board.Tile) protocol.TileInfo {
	return protocol.TileInfo{
		Position:      t.Position,
		Type:          string(t.Type),
		ChallengeID:   t.ChallengeID,
		CustomSpaceID: t.CustomSpaceID,
	}
}
