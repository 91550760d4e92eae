package protocol

// --- 客户端请求 Payloads ---

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	PlayerName string `json:"player_name"`
	Avatar     string `json:"avatar,omitempty"`
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
	Avatar     string `json:"avatar,omitempty"`
}

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	SessionID string `json:"session_id"` // 玩家会话 ID（跨连接稳定）
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// MovePlayerPayload 移动请求
type MovePlayerPayload struct {
	DiceRoll int `json:"dice_roll"`
}

// ChallengeCompletePayload 挑战完成请求
type ChallengeCompletePayload struct {
	ChallengeID string `json:"challenge_id"`
	Success     bool   `json:"success"`
	Answer      *int   `json:"answer,omitempty"` // 问答题答案索引
}

// StartVotePayload 发起投票请求
type StartVotePayload struct {
	ChallengeID string `json:"challenge_id"`
}

// CastVotePayload 投票请求
type CastVotePayload struct {
	Vote bool `json:"vote"` // true = 挑战成功
}

// GetLeaderboardPayload 获取积分榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 数量，默认 10
}

// --- 数据传输对象 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID          string `json:"id"` // 当前连接 ID
	SessionID   string `json:"session_id,omitempty"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	Position    int    `json:"position"`
	IsHost      bool   `json:"is_host"`
	IsConnected bool   `json:"is_connected"`
}

// TileInfo 格子信息
type TileInfo struct {
	Position      int    `json:"position"`
	Type          string `json:"type"`
	ChallengeID   string `json:"challenge_id,omitempty"`
	CustomSpaceID string `json:"custom_space_id,omitempty"`
}

// BoardInfo 棋盘信息
type BoardInfo struct {
	Seed  string     `json:"seed"`
	Tiles []TileInfo `json:"tiles"`
}

// RoomInfo 房间信息
type RoomInfo struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	HostID      string       `json:"host_id"`
	Status      string       `json:"status"`
	MaxPlayers  int          `json:"max_players"`
	CurrentTurn int          `json:"current_turn"`
	Players     []PlayerInfo `json:"players"`
	Board       *BoardInfo   `json:"board,omitempty"`
}

// ChallengeInfo 挑战信息（不含正确答案）
type ChallengeInfo struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	AgeRating string   `json:"age_rating"`
	Points    int      `json:"points"`
	Question  string   `json:"question,omitempty"`
	Answers   []string `json:"answers,omitempty"`
	Action    string   `json:"action,omitempty"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	Timestamp int64 `json:"timestamp"` // 回显客户端时间戳
}

// RoomUpdatedPayload 房间状态更新
type RoomUpdatedPayload struct {
	Room      RoomInfo `json:"room"`
	SessionID string   `json:"session_id,omitempty"` // 仅发给刚加入/重连的玩家
}

// GameStartedPayload 游戏开始通知
type GameStartedPayload struct {
	Room RoomInfo `json:"room"`
}

// TurnChangedPayload 回合变更通知
type TurnChangedPayload struct {
	CurrentTurn int    `json:"current_turn"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	TurnTimeout int    `json:"turn_timeout,omitempty"` // 秒
}

// DiceRolledPayload 骰子结果通知
type DiceRolledPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	DiceRoll   int    `json:"dice_roll"`
}

// PlayerMovedPayload 玩家移动通知
type PlayerMovedPayload struct {
	PlayerID    string   `json:"player_id"`
	PlayerName  string   `json:"player_name"`
	NewPosition int      `json:"new_position"`
	Tile        TileInfo `json:"tile"`
}

// ChallengeStartedPayload 挑战开始通知
type ChallengeStartedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	Challenge  ChallengeInfo `json:"challenge"`
}

// ChallengeCompletedPayload 挑战结束通知
type ChallengeCompletedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Success    bool   `json:"success"`
	Points     int    `json:"points,omitempty"`
}

// PlayerDisconnectedPayload 玩家掉线通知
type PlayerDisconnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReconnectedPayload 玩家重连通知
type PlayerReconnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// HostChangedPayload 房主变更通知
type HostChangedPayload struct {
	NewHostID   string `json:"new_host_id"`
	NewHostName string `json:"new_host_name"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	Room RoomInfo `json:"room"`
}

// VoteStartedPayload 投票开始通知
type VoteStartedPayload struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	ChallengeID string `json:"challenge_id"`
	TotalVoters int    `json:"total_voters"`
}

// VoteUpdatePayload 票数更新通知
type VoteUpdatePayload struct {
	VotesCast   int `json:"votes_cast"`
	TotalVoters int `json:"total_voters"`
}

// VoteResultPayload 投票结果通知
type VoteResultPayload struct {
	PlayerID string `json:"player_id"`
	Success  bool   `json:"success"`
	YesVotes int    `json:"yes_votes"`
	NoVotes  int    `json:"no_votes"`
}

// LeaderboardEntry 积分榜条目
type LeaderboardEntry struct {
	PlayerName string `json:"player_name"`
	Points     int64  `json:"points"`
}

// LeaderboardResultPayload 积分榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
