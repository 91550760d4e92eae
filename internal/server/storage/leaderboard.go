package storage

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/dice-party/internal/protocol"
)

// AddPoints 给玩家加积分，按会话 ID 累计（昵称可能重复）
// 展示用昵称另存一份，积分榜读取时反查
func (rs *RedisStore) AddPoints(ctx context.Context, sessionID, playerName string, points int) error {
	pipe := rs.client.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardKey, float64(points), sessionID)
	pipe.HSet(ctx, leaderboardNamesKey, sessionID, playerName)
	_, err := pipe.Exec(ctx)
	return err
}

// GetPoints 查询玩家积分
func (rs *RedisStore) GetPoints(ctx context.Context, sessionID string) (int64, error) {
	score, err := rs.client.ZScore(ctx, leaderboardKey, sessionID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}

// TopPlayers 获取积分榜前 N 名
func (rs *RedisStore) TopPlayers(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	results, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []protocol.LeaderboardEntry{}, nil
	}

	ids := make([]string, 0, len(results))
	for _, z := range results {
		id, _ := z.Member.(string)
		ids = append(ids, id)
	}

	names, err := rs.client.HMGet(ctx, leaderboardNamesKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name := ""
		if i < len(names) {
			name, _ = names[i].(string)
		}
		entries = append(entries, protocol.LeaderboardEntry{
			PlayerName: name,
			Points:     int64(z.Score),
		})
	}
	return entries, nil
}
