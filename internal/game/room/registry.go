package room

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/dice-party/internal/apperrors"
	"github.com/palemoky/dice-party/internal/config"
	"github.com/palemoky/dice-party/internal/game/board"
)

const (
	roomCodeLength = 6
	// 去掉易混淆字符的房间号字符集（无 I O 0 1）
	roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// 房间号冲突时的重试上限
	codeMaxAttempts = 10
)

// Registry 房间注册表
// 每个操作都是对 Store 的整份文档读改写；同一房间的操作通过按房间 ID
// 的互斥锁串行化，避免同进程内的丢失更新
type Registry struct {
	store  Store
	spaces SpaceSource // 可以为 nil
	cfg    *config.GameConfig

	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

// NewRegistry 创建房间注册表，spaces 可以为 nil
func NewRegistry(store Store, spaces SpaceSource, cfg *config.GameConfig) *Registry {
	return &Registry{
		store:  store,
		spaces: spaces,
		cfg:    cfg,
		locks:  make(map[string]*sync.Mutex),
	}
}

// lockRoom 获取房间级互斥锁，返回解锁函数
func (reg *Registry) lockRoom(roomID string) func() {
	reg.mu.Lock()
	l, ok := reg.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		reg.locks[roomID] = l
	}
	reg.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateRoom 创建房间：生成房间号、棋盘和房主玩家，并写入三类索引
func (reg *Registry) CreateRoom(ctx context.Context, connectionID, name, avatar string) (*Room, error) {
	code, err := reg.generateRoomCode(ctx)
	if err != nil {
		return nil, err
	}

	seed := uuid.New().String()
	b := reg.generateBoard(ctx, seed)

	now := time.Now()
	host := &Player{
		ID:          connectionID,
		SessionID:   uuid.New().String(),
		Name:        name,
		Avatar:      avatar,
		IsHost:      true,
		IsConnected: true,
		JoinedAt:    now,
	}

	r := &Room{
		ID:         uuid.New().String(),
		Code:       code,
		HostID:     connectionID,
		Players:    []*Player{host},
		MaxPlayers: reg.cfg.MaxPlayers,
		Status:     StatusWaiting,
		Board:      b,
		CreatedAt:  now,
	}
	host.RoomID = r.ID

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}
	if err := reg.store.SaveRoomCode(ctx, code, r.ID); err != nil {
		return nil, err
	}
	if err := reg.store.SaveSession(ctx, &Session{
		SessionID:    host.SessionID,
		RoomID:       r.ID,
		ConnectionID: connectionID,
	}); err != nil {
		return nil, err
	}

	log.Printf("🏠 房间 %s (%s) 已创建，房主 %s", code, r.ID, name)

	return r, nil
}

// GetRoom 按 ID 获取房间
func (reg *Registry) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	r, err := reg.store.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}

// GetRoomByCode 按房间号获取房间
func (reg *Registry) GetRoomByCode(ctx context.Context, code string) (*Room, error) {
	id, err := reg.store.LoadRoomID(ctx, code)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.ErrRoomNotFound
	}
	return reg.GetRoom(ctx, id)
}

// AddPlayer 加入房间
// 相同连接 ID 已在房间时幂等：仅标记在线，不追加
func (reg *Registry) AddPlayer(ctx context.Context, roomID, connectionID, name, avatar string) (*Room, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if existing := r.FindPlayer(connectionID); existing != nil {
		existing.IsConnected = true
		if err := reg.saveRoom(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	}

	if r.Status != StatusWaiting {
		return nil, apperrors.ErrGameStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return nil, apperrors.ErrRoomFull
	}

	p := &Player{
		ID:          connectionID,
		SessionID:   uuid.New().String(),
		RoomID:      r.ID,
		Name:        name,
		Avatar:      avatar,
		IsConnected: true,
		JoinedAt:    time.Now(),
	}
	r.Players = append(r.Players, p)

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}
	if err := reg.store.SaveSession(ctx, &Session{
		SessionID:    p.SessionID,
		RoomID:       r.ID,
		ConnectionID: connectionID,
	}); err != nil {
		return nil, err
	}

	log.Printf("👥 玩家 %s 加入房间 %s (%d/%d)", name, r.Code, len(r.Players), r.MaxPlayers)

	return r, nil
}

// StartGame 开始游戏：WAITING → PLAYING，回合重置为 0
func (reg *Registry) StartGame(ctx context.Context, roomID string) (*Room, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusWaiting {
		return nil, apperrors.ErrGameStarted
	}
	if len(r.Players) < 2 {
		return nil, apperrors.ErrNotEnoughPlayers
	}

	r.Status = StatusPlaying
	r.CurrentTurn = 0

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("🎲 房间 %s 游戏开始，%d 名玩家", r.Code, len(r.Players))

	return r, nil
}

// MovePlayer 移动玩家，位置在终点格截断，不会回绕
func (reg *Registry) MovePlayer(ctx context.Context, roomID, connectionID string, diceRoll int) (*Room, board.Tile, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, board.Tile{}, err
	}

	p := r.FindPlayer(connectionID)
	if p == nil {
		return nil, board.Tile{}, apperrors.ErrPlayerNotFound
	}

	p.Position = min(p.Position+diceRoll, r.LastTileIndex())
	landed := r.Board.Tiles[p.Position]

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, board.Tile{}, err
	}

	return r, landed, nil
}

// NextTurn 回合推进：(currentTurn + 1) mod 玩家数
// 调用方负责保证当前确实应该换人（见状态机）
func (reg *Registry) NextTurn(ctx context.Context, roomID string) (*Room, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(r.Players) > 0 {
		r.CurrentTurn = (r.CurrentTurn + 1) % len(r.Players)
	}

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// MarkDisconnected 标记玩家掉线，玩家保留在房间中
// 掉线的是房主且还有其他在线玩家时，立刻转移房主，返回新房主
// 玩家不在房间时是 no-op
func (reg *Registry) MarkDisconnected(ctx context.Context, roomID, connectionID string) (*Room, *Player, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	p := r.FindPlayer(connectionID)
	if p == nil {
		return r, nil, nil
	}

	now := time.Now()
	p.IsConnected = false
	p.LastDisconnectedAt = &now

	var promoted *Player
	if p.IsHost {
		promoted = promoteHost(r, p, true)
	}

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, nil, err
	}

	log.Printf("📴 玩家 %s 在房间 %s 掉线", p.Name, r.Code)

	return r, promoted, nil
}

// ReconnectPlayer 通过会话映射重连
// 连接 ID 整体替换，位置/房主标记/名字原样保留，游戏进度不受影响
func (reg *Registry) ReconnectPlayer(ctx context.Context, sessionID, newConnectionID string) (*Room, *Player, error) {
	sess, err := reg.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, apperrors.ErrSessionExpired
	}

	defer reg.lockRoom(sess.RoomID)()

	r, err := reg.store.LoadRoom(ctx, sess.RoomID)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, apperrors.ErrRoomNotFound
	}

	p := r.FindPlayerBySession(sessionID)
	if p == nil {
		return nil, nil, apperrors.ErrPlayerNotFound
	}

	p.ID = newConnectionID
	p.IsConnected = true
	p.LastDisconnectedAt = nil
	if p.IsHost {
		r.HostID = newConnectionID
	}

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, nil, err
	}

	sess.ConnectionID = newConnectionID
	if err := reg.store.SaveSession(ctx, sess); err != nil {
		return nil, nil, err
	}

	log.Printf("📶 玩家 %s 重连到房间 %s", p.Name, r.Code)

	return r, p, nil
}

// RemovePlayer 永久移除玩家
// 移除的是房主且还有剩余玩家时转移房主（按加入时间最早）；
// 游戏进行中时回合索引按新玩家数取模收敛；空房间留待存储过期
func (reg *Registry) RemovePlayer(ctx context.Context, roomID, connectionID string) (*Room, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range r.Players {
		if p.ID == connectionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return r, nil
	}

	removed := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if len(r.Players) == 0 {
		r.HostID = ""
	} else {
		if removed.IsHost {
			promoteHost(r, nil, false)
		}
		if r.Status == StatusPlaying {
			r.CurrentTurn %= len(r.Players)
		}
	}

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("🚪 玩家 %s 离开房间 %s（剩余 %d 人）", removed.Name, r.Code, len(r.Players))

	return r, nil
}

// FinishGame 房主显式结束游戏：→ FINISHED（终态，等待过期）
func (reg *Registry) FinishGame(ctx context.Context, roomID, connectionID string) (*Room, error) {
	defer reg.lockRoom(roomID)()

	r, err := reg.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.HostID != connectionID {
		return nil, apperrors.ErrNotHost
	}

	r.Status = StatusFinished

	if err := reg.saveRoom(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("🏁 房间 %s 游戏结束", r.Code)

	return r, nil
}

// promoteHost 在候选人中选加入时间最早的玩家为新房主，列表顺序作平手裁决
// exclude 不参与；connectedOnly 时只考虑在线玩家
// 没有候选人时维持原状，返回 nil
func promoteHost(r *Room, exclude *Player, connectedOnly bool) *Player {
	var next *Player
	for _, p := range r.Players {
		if p == exclude {
			continue
		}
		if connectedOnly && !p.IsConnected {
			continue
		}
		if next == nil || p.JoinedAt.Before(next.JoinedAt) {
			next = p
		}
	}
	if next == nil {
		return nil
	}

	for _, p := range r.Players {
		p.IsHost = false
	}
	next.IsHost = true
	r.HostID = next.ID
	return next
}

// saveRoom 写回整份房间文档，刷新 UpdatedAt
func (reg *Registry) saveRoom(ctx context.Context, r *Room) error {
	r.UpdatedAt = time.Now()
	return reg.store.SaveRoom(ctx, r)
}

// generateRoomCode 生成唯一房间号，冲突时有界重试
func (reg *Registry) generateRoomCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}

		existing, err := reg.store.LoadRoomID(ctx, string(code))
		if err != nil {
			return "", err
		}
		if existing == "" {
			return string(code), nil
		}
	}
	return "", fmt.Errorf("failed to allocate a unique room code after %d attempts", codeMaxAttempts)
}

// generateBoard 生成棋盘，自定义格子来源不可用时降级为纯算法棋盘
func (reg *Registry) generateBoard(ctx context.Context, seed string) board.Board {
	if reg.spaces != nil {
		spaces, err := reg.spaces.GetActiveSpaces(ctx)
		if err != nil {
			log.Printf("⚠️ 自定义格子来源不可用，使用默认棋盘: %v", err)
		} else if len(spaces) > 0 {
			return board.GenerateWithSpaces(seed, reg.cfg.BoardSize, spaces)
		}
	}
	return board.Generate(seed, reg.cfg.BoardSize)
}

// CleanupLoop 周期性清理已过期房间的锁条目
// 仅是内存卫生，存储的按键过期才是权威的回收机制
func (reg *Registry) CleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.cleanupLocks(ctx)
		}
	}
}

// cleanupLocks 删除对应房间已不存在的锁
func (reg *Registry) cleanupLocks(ctx context.Context) {
	reg.mu.Lock()
	ids := make([]string, 0, len(reg.locks))
	for id := range reg.locks {
		ids = append(ids, id)
	}
	reg.mu.Unlock()

	removed := 0
	for _, id := range ids {
		r, err := reg.store.LoadRoom(ctx, id)
		if err != nil {
			continue
		}
		if r == nil {
			reg.mu.Lock()
			delete(reg.locks, id)
			reg.mu.Unlock()
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🧹 清理了 %d 个过期房间的锁", removed)
	}
}
