package vote

// Vote 单个玩家的投票
type Vote struct {
	PlayerID string `json:"player_id"`
	Approve  bool   `json:"approve"`
}

// Session 挑战投票会话（同伴裁决挑战是否完成）
// 存储在 Session Store 中，5 分钟过期，结算后显式删除
type Session struct {
	RoomID      string `json:"room_id"`
	PlayerID    string `json:"player_id"` // 被裁决的挑战者
	PlayerName  string `json:"player_name"`
	ChallengeID string `json:"challenge_id"`
	Votes       []Vote `json:"votes"`
	TotalVoters int    `json:"total_voters"`
}

// NewSession 创建投票会话
func NewSession(roomID, playerID, playerName, challengeID string, totalVoters int) *Session {
	return &Session{
		RoomID:      roomID,
		PlayerID:    playerID,
		PlayerName:  playerName,
		ChallengeID: challengeID,
		TotalVoters: totalVoters,
	}
}

// Cast 记录一票；同一玩家重复投票时覆盖旧票，不会重复计数
func (s *Session) Cast(playerID string, approve bool) {
	for i := range s.Votes {
		if s.Votes[i].PlayerID == playerID {
			s.Votes[i].Approve = approve
			return
		}
	}
	s.Votes = append(s.Votes, Vote{PlayerID: playerID, Approve: approve})
}

// IsComplete 所有投票人都已投票
func (s *Session) IsComplete() bool {
	return len(s.Votes) >= s.TotalVoters
}

// Result 计算结果：赞成票严格多数才算成功
// 平票和零票都判为失败（保守默认）
func (s *Session) Result() (success bool, yes, no int) {
	for _, v := range s.Votes {
		if v.Approve {
			yes++
		} else {
			no++
		}
	}
	return yes > no, yes, no
}
