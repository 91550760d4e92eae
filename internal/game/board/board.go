package board

// TileType 格子类型
type TileType string

const (
	TileStart     TileType = "START"
	TileNormal    TileType = "NORMAL"
	TileChallenge TileType = "CHALLENGE"
	TileBonus     TileType = "BONUS"
	TilePenalty   TileType = "PENALTY"
	TileFinish    TileType = "FINISH"
)

// Tile 棋盘上的一个格子
type Tile struct {
	Position      int      `json:"position"`
	Type          TileType `json:"type"`
	ChallengeID   string   `json:"challenge_id,omitempty"`    // 挑战槽位引用，落地时解析
	CustomSpaceID string   `json:"custom_space_id,omitempty"` // 自定义格子引用
}

// Board 棋盘（seed 可重新生成完全相同的格子序列）
type Board struct {
	Seed  string `json:"seed"`
	Tiles []Tile `json:"tiles"`
}

// CustomSpace 管理端配置的自定义格子
type CustomSpace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // CHALLENGE/QUIZ/TRIVIA/BONUS/PENALTY/...
}

const (
	// DefaultTileCount 默认格子数
	DefaultTileCount = 50
	// MinTileCount 最小格子数
	MinTileCount = 20
	// MaxTileCount 最大格子数
	MaxTileCount = 100
)
