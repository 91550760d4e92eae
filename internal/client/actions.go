package client

import (
	"time"

	"github.com/palemoky/dice-party/internal/protocol"
)

// --- 便捷方法 ---

// CreateRoom 创建房间
func (c *Client) CreateRoom(playerName, avatar string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		PlayerName: playerName,
		Avatar:     avatar,
	}))
}

// JoinRoom 加入房间
func (c *Client) JoinRoom(roomCode, playerName, avatar string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode:   roomCode,
		PlayerName: playerName,
		Avatar:     avatar,
	}))
}

// LeaveRoom 离开房间
func (c *Client) LeaveRoom() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveRoom, nil))
}

// StartGame 开始游戏（仅房主）
func (c *Client) StartGame() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStartGame, nil))
}

// RollDice 掷骰子
func (c *Client) RollDice() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRollDice, nil))
}

// Move 按骰子点数移动
func (c *Client) Move(diceRoll int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgMovePlayer, protocol.MovePlayerPayload{
		DiceRoll: diceRoll,
	}))
}

// CompleteChallenge 上报非问答类挑战结果
func (c *Client) CompleteChallenge(challengeID string, success bool) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgChallengeComplete, protocol.ChallengeCompletePayload{
		ChallengeID: challengeID,
		Success:     success,
	}))
}

// AnswerTrivia 提交问答题答案，成败由服务端判定
func (c *Client) AnswerTrivia(challengeID string, answerIndex int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgChallengeComplete, protocol.ChallengeCompletePayload{
		ChallengeID: challengeID,
		Answer:      &answerIndex,
	}))
}

// StartVote 发起群体裁决
func (c *Client) StartVote(challengeID string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStartVote, protocol.StartVotePayload{
		ChallengeID: challengeID,
	}))
}

// CastVote 投票
func (c *Client) CastVote(approve bool) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCastVote, protocol.CastVotePayload{
		Vote: approve,
	}))
}

// EndGame 提前结束游戏（仅房主）
func (c *Client) EndGame() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgEndGame, nil))
}

// GetLeaderboard 获取积分榜
func (c *Client) GetLeaderboard(limit int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Limit: limit,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// Reconnect 手动发送重连请求
func (c *Client) Reconnect() error {
	if c.SessionID == "" {
		return errNoSession
	}
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgReconnect, protocol.ReconnectPayload{
		SessionID: c.SessionID,
	}))
}
