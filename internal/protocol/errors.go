package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeRoomNotFound     = 2001
	ErrCodeRoomFull         = 2002
	ErrCodeNotInRoom        = 2003
	ErrCodeGameStarted      = 2004 // 游戏已开始
	ErrCodeNotEnoughPlayers = 2005 // 人数不足
	ErrCodePlayerNotFound   = 2006 // 玩家不存在

	ErrCodeGameNotStart      = 3001
	ErrCodeNotYourTurn       = 3002
	ErrCodeNotHost           = 3003 // 只有房主可以操作
	ErrCodeChallengeNotFound = 3004 // 挑战不存在
	ErrCodeVoteNotFound      = 3005 // 投票不存在

	ErrCodeSessionExpired = 4001 // 会话已过期

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "Unknown error",
	ErrCodeInvalidMsg:        "Invalid message format",
	ErrCodeRateLimit:         "Too many requests",
	ErrCodeRoomNotFound:      "Room not found",
	ErrCodeRoomFull:          "Room is full",
	ErrCodeNotInRoom:         "You are not in a room",
	ErrCodeGameStarted:       "Game already started",
	ErrCodeNotEnoughPlayers:  "Need at least 2 players to start",
	ErrCodePlayerNotFound:    "Player not found",
	ErrCodeGameNotStart:      "Game has not started",
	ErrCodeNotYourTurn:       "Not your turn",
	ErrCodeNotHost:           "Only the host can do that",
	ErrCodeChallengeNotFound: "Challenge not found",
	ErrCodeVoteNotFound:      "No vote in progress",
	ErrCodeSessionExpired:    "Session expired",
	ErrCodeServerMaintenance: "Server is under maintenance",
}
