package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/dice-party/internal/game/board"
	"github.com/palemoky/dice-party/internal/game/challenge"
	"github.com/palemoky/dice-party/internal/game/room"
	"github.com/palemoky/dice-party/internal/game/vote"
)

const (
	// Redis key 前缀
	roomKeyPrefix      = "room:"
	roomCodeKeyPrefix  = "roomcode:"
	sessionKeyPrefix   = "session:"
	voteKeyPrefix      = "vote:"
	challengeKeyPrefix = "challenge:"
	spaceKeyPrefix     = "space:"

	// 积分榜：sorted set 按会话 ID 记分，hash 存展示用昵称
	leaderboardKey      = "leaderboard:points"
	leaderboardNamesKey = "leaderboard:names"
)

// RedisStore Redis 存储
// 实现 room.Store / room.SpaceSource / challenge.Source，
// 所有游戏态键都带过期时间，过期即回收
type RedisStore struct {
	client  *redis.Client
	roomTTL time.Duration
	voteTTL time.Duration
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, roomTTL, voteTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, roomTTL: roomTTL, voteTTL: voteTTL}
}

// --- 房间存储 ---

// SaveRoom 保存房间文档（整份覆盖，刷新过期时间）
func (rs *RedisStore) SaveRoom(ctx context.Context, r *room.Room) error {
	if r == nil {
		return nil
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("serialize room: %w", err)
	}

	return rs.client.Set(ctx, roomKeyPrefix+r.ID, data, rs.roomTTL).Err()
}

// LoadRoom 加载房间文档，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadRoom(ctx context.Context, id string) (*room.Room, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var r room.Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("deserialize room: %w", err)
	}
	return &r, nil
}

// SaveRoomCode 保存房间号 → 房间 ID 索引
func (rs *RedisStore) SaveRoomCode(ctx context.Context, code, roomID string) error {
	return rs.client.Set(ctx, roomCodeKeyPrefix+code, roomID, rs.roomTTL).Err()
}

// LoadRoomID 按房间号查房间 ID，不存在时返回 ("", nil)
func (rs *RedisStore) LoadRoomID(ctx context.Context, code string) (string, error) {
	id, err := rs.client.Get(ctx, roomCodeKeyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// --- 会话存储 ---

// SaveSession 保存会话映射
func (rs *RedisStore) SaveSession(ctx context.Context, s *room.Session) error {
	key := sessionKeyPrefix + s.SessionID
	data := map[string]any{
		"room_id":       s.RoomID,
		"connection_id": s.ConnectionID,
	}
	if err := rs.client.HSet(ctx, key, data).Err(); err != nil {
		return err
	}
	return rs.client.Expire(ctx, key, rs.roomTTL).Err()
}

// LoadSession 加载会话映射，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadSession(ctx context.Context, sessionID string) (*room.Session, error) {
	data, err := rs.client.HGetAll(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &room.Session{
		SessionID:    sessionID,
		RoomID:       data["room_id"],
		ConnectionID: data["connection_id"],
	}, nil
}

// --- 投票存储 ---

// SaveVote 保存投票会话（短过期时间）
func (rs *RedisStore) SaveVote(ctx context.Context, v *vote.Session) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize vote: %w", err)
	}
	return rs.client.Set(ctx, voteKeyPrefix+v.RoomID, data, rs.voteTTL).Err()
}

// LoadVote 加载房间当前的投票会话，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadVote(ctx context.Context, roomID string) (*vote.Session, error) {
	data, err := rs.client.Get(ctx, voteKeyPrefix+roomID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var v vote.Session
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("deserialize vote: %w", err)
	}
	return &v, nil
}

// DeleteVote 结算后显式删除投票会话
func (rs *RedisStore) DeleteVote(ctx context.Context, roomID string) error {
	return rs.client.Del(ctx, voteKeyPrefix+roomID).Err()
}

// --- 挑战数据源（管理端维护，无过期） ---

// SeedChallenges 写入挑战数据（管理端导入用）
func (rs *RedisStore) SeedChallenges(ctx context.Context, challenges []challenge.Challenge) error {
	for i := range challenges {
		data, err := json.Marshal(&challenges[i])
		if err != nil {
			return fmt.Errorf("serialize challenge %s: %w", challenges[i].ID, err)
		}
		if err := rs.client.Set(ctx, challengeKeyPrefix+challenges[i].ID, data, 0).Err(); err != nil {
			return err
		}
	}
	return nil
}

// ListChallenges 列出全部挑战
func (rs *RedisStore) ListChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	keys, err := rs.client.Keys(ctx, challengeKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	out := make([]challenge.Challenge, 0, len(keys))
	for _, key := range keys {
		data, err := rs.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var c challenge.Challenge
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("deserialize challenge %s: %w", key, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// GetChallenge 按 ID 获取挑战
func (rs *RedisStore) GetChallenge(ctx context.Context, id string) (*challenge.Challenge, error) {
	data, err := rs.client.Get(ctx, challengeKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c challenge.Challenge
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("deserialize challenge %s: %w", id, err)
	}
	return &c, nil
}

// --- 自定义格子 ---

// SaveSpace 保存自定义格子（管理端配置用）
func (rs *RedisStore) SaveSpace(ctx context.Context, s board.CustomSpace) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize space %s: %w", s.ID, err)
	}
	return rs.client.Set(ctx, spaceKeyPrefix+s.ID, data, 0).Err()
}

// GetActiveSpaces 获取全部自定义格子
func (rs *RedisStore) GetActiveSpaces(ctx context.Context) ([]board.CustomSpace, error) {
	keys, err := rs.client.Keys(ctx, spaceKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	out := make([]board.CustomSpace, 0, len(keys))
	for _, key := range keys {
		data, err := rs.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var s board.CustomSpace
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("deserialize space %s: %w", key, err)
		}
		out = append(out, s)
	}
	return out, nil
}
