package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间

	// 游戏操作
	MsgStartGame         MessageType = "start_game"         // 开始游戏
	MsgRollDice          MessageType = "roll_dice"          // 掷骰子
	MsgMovePlayer        MessageType = "move_player"        // 移动棋子
	MsgChallengeComplete MessageType = "challenge_complete" // 挑战完成
	MsgEndGame           MessageType = "end_game"           // 结束游戏

	// 投票操作
	MsgStartVote MessageType = "start_vote" // 发起挑战投票
	MsgCastVote  MessageType = "cast_vote"  // 投票

	// 排行榜
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取积分榜
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected          MessageType = "connected"           // 连接成功
	MsgPong               MessageType = "pong"                // 心跳 pong
	MsgPlayerDisconnected MessageType = "player_disconnected" // 玩家掉线通知
	MsgPlayerReconnected  MessageType = "player_reconnected"  // 玩家重连通知

	// 房间相关
	MsgRoomUpdated MessageType = "room_updated" // 房间状态更新
	MsgHostChanged MessageType = "host_changed" // 房主变更

	// 游戏流程
	MsgGameStarted        MessageType = "game_started"        // 游戏开始
	MsgTurnChanged        MessageType = "turn_changed"        // 回合变更
	MsgDiceRolled         MessageType = "dice_rolled"         // 骰子结果
	MsgPlayerMoved        MessageType = "player_moved"        // 玩家移动
	MsgChallengeStarted   MessageType = "challenge_started"   // 挑战开始
	MsgChallengeCompleted MessageType = "challenge_completed" // 挑战结束
	MsgGameOver           MessageType = "game_over"           // 游戏结束

	// 投票流程
	MsgVoteStarted MessageType = "vote_started" // 投票开始
	MsgVoteUpdate  MessageType = "vote_update"  // 票数更新
	MsgVoteResult  MessageType = "vote_result"  // 投票结果

	// 排行榜
	MsgLeaderboardResult MessageType = "leaderboard_result" // 积分榜结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
