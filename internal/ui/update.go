package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/dice-party/internal/protocol"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		handled, cmd := m.handleKeyPress(msg)
		if handled {
			return m, cmd
		}

	case ConnectedMsg:
		m.phase = PhaseName
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.error = "无法连接到服务器，按 ESC 退出"
		m.phase = PhaseConnecting

	case ClearErrorMsg:
		m.error = ""

	case ServerMessage:
		if cmd := m.handleServerMessage(msg.Msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}
	}

	// 文本输入阶段把余下按键交给输入框
	if m.phase == PhaseName || m.phase == PhaseJoinInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress 按阶段分发按键，返回是否已处理
func (m *Model) handleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// 全局按键
	switch key {
	case "ctrl+c":
		m.client.Close()
		return true, tea.Quit
	case "esc":
		return true, m.handleEscape()
	}

	switch m.phase {
	case PhaseName:
		if key == "enter" {
			name := strings.TrimSpace(m.input.Value())
			m.playerName = name
			m.input.Reset()
			m.phase = PhaseMenu
			return true, nil
		}

	case PhaseMenu:
		switch key {
		case "c":
			_ = m.client.CreateRoom(m.playerName, "")
			return true, nil
		case "j":
			m.input.Placeholder = "输入房间码..."
			m.input.CharLimit = 6
			m.input.Reset()
			m.input.Focus()
			m.phase = PhaseJoinInput
			return true, nil
		case "l":
			_ = m.client.GetLeaderboard(10)
			return true, nil
		case "q":
			m.client.Close()
			return true, tea.Quit
		}

	case PhaseJoinInput:
		if key == "enter" {
			code := strings.TrimSpace(m.input.Value())
			if code != "" {
				_ = m.client.JoinRoom(code, m.playerName, "")
			}
			return true, nil
		}

	case PhaseWaiting:
		if key == "s" && m.isHost() {
			_ = m.client.StartGame()
			return true, nil
		}

	case PhasePlaying:
		switch key {
		case "r":
			if m.myTurn {
				_ = m.client.RollDice()
				return true, nil
			}
		case "e":
			if m.isHost() {
				_ = m.client.EndGame()
				return true, nil
			}
		}

	case PhaseChallenge:
		return m.handleChallengeKey(key)

	case PhaseVoting:
		// 挑战者本人等待裁决
		if m.challenger == m.myID() {
			return false, nil
		}
		switch key {
		case "y":
			_ = m.client.CastVote(true)
			return true, nil
		case "n":
			_ = m.client.CastVote(false)
			return true, nil
		}

	case PhaseGameOver:
		if key == "l" {
			_ = m.client.GetLeaderboard(10)
			return true, nil
		}
	}

	return false, nil
}

// handleChallengeKey 挑战阶段按键：答题、自报结果或交给大家投票
func (m *Model) handleChallengeKey(key string) (bool, tea.Cmd) {
	if m.challenge == nil || m.challenger != m.myID() {
		return false, nil
	}

	if len(m.challenge.Answers) > 0 {
		// 问答题：数字键选答案
		switch key {
		case "1", "2", "3", "4":
			idx := int(key[0] - '1')
			if idx < len(m.challenge.Answers) {
				_ = m.client.AnswerTrivia(m.challenge.ID, idx)
			}
			return true, nil
		}
		return false, nil
	}

	switch key {
	case "y":
		_ = m.client.CompleteChallenge(m.challenge.ID, true)
		return true, nil
	case "n":
		_ = m.client.CompleteChallenge(m.challenge.ID, false)
		return true, nil
	case "v":
		_ = m.client.StartVote(m.challenge.ID)
		return true, nil
	}
	return false, nil
}

// handleEscape ESC 的语义随阶段变化：退出、返回或离开房间
func (m *Model) handleEscape() tea.Cmd {
	switch m.phase {
	case PhaseConnecting, PhaseMenu, PhaseName:
		m.client.Close()
		return tea.Quit
	case PhaseJoinInput, PhaseLeaderboard, PhaseGameOver:
		m.phase = PhaseMenu
	case PhaseWaiting:
		_ = m.client.LeaveRoom()
		m.room = protocol.RoomInfo{}
		m.phase = PhaseMenu
	}
	return nil
}

// handleServerMessage 按消息类型更新本地状态
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgRoomUpdated:
		payload := parse[protocol.RoomUpdatedPayload](msg)
		m.room = payload.Room
		if m.phase == PhaseMenu || m.phase == PhaseJoinInput {
			m.phase = PhaseWaiting
			m.appendLog("🏠 进入房间 %s", m.room.Code)
		}

	case protocol.MsgGameStarted:
		payload := parse[protocol.GameStartedPayload](msg)
		m.room = payload.Room
		m.phase = PhasePlaying
		m.appendLog("🎮 游戏开始！")

	case protocol.MsgTurnChanged:
		payload := parse[protocol.TurnChangedPayload](msg)
		m.room.CurrentTurn = payload.CurrentTurn
		m.myTurn = payload.PlayerID == m.myID()
		m.challenge = nil
		m.voteStarted = false
		if m.phase == PhaseChallenge || m.phase == PhaseVoting {
			m.phase = PhasePlaying
		}
		if m.myTurn {
			m.appendLog("🎲 轮到你了，按 r 掷骰子")
		} else {
			m.appendLog("⏳ 轮到 %s", payload.PlayerName)
		}

	case protocol.MsgDiceRolled:
		payload := parse[protocol.DiceRolledPayload](msg)
		m.appendLog("🎲 %s 掷出 %d", payload.PlayerName, payload.DiceRoll)
		if payload.PlayerID == m.myID() {
			m.lastRoll = payload.DiceRoll
			_ = m.client.Move(payload.DiceRoll)
		}

	case protocol.MsgPlayerMoved:
		payload := parse[protocol.PlayerMovedPayload](msg)
		for i := range m.room.Players {
			if m.room.Players[i].ID == payload.PlayerID {
				m.room.Players[i].Position = payload.NewPosition
			}
		}
		m.appendLog("🚶 %s 移动到第 %d 格", payload.PlayerName, payload.NewPosition)

	case protocol.MsgChallengeStarted:
		payload := parse[protocol.ChallengeStartedPayload](msg)
		c := payload.Challenge
		m.challenge = &c
		m.challenger = payload.PlayerID
		m.phase = PhaseChallenge
		m.appendLog("⚡ %s 触发挑战", payload.PlayerName)

	case protocol.MsgChallengeCompleted:
		payload := parse[protocol.ChallengeCompletedPayload](msg)
		if payload.Success {
			m.appendLog("✅ %s 挑战成功 +%d 分", payload.PlayerName, payload.Points)
		} else {
			m.appendLog("❌ %s 挑战失败", payload.PlayerName)
		}

	case protocol.MsgVoteStarted:
		payload := parse[protocol.VoteStartedPayload](msg)
		m.voteStarted = true
		m.votesCast = 0
		m.totalVoters = payload.TotalVoters
		m.challenger = payload.PlayerID
		m.phase = PhaseVoting
		m.appendLog("🗳️ 给 %s 的挑战投票", payload.PlayerName)

	case protocol.MsgVoteUpdate:
		payload := parse[protocol.VoteUpdatePayload](msg)
		m.votesCast = payload.VotesCast
		m.totalVoters = payload.TotalVoters

	case protocol.MsgVoteResult:
		payload := parse[protocol.VoteResultPayload](msg)
		m.voteStarted = false
		m.appendLog("🗳️ 裁决：%d 赞成 / %d 反对", payload.YesVotes, payload.NoVotes)

	case protocol.MsgPlayerDisconnected:
		payload := parse[protocol.PlayerDisconnectedPayload](msg)
		for i := range m.room.Players {
			if m.room.Players[i].ID == payload.PlayerID {
				m.room.Players[i].IsConnected = false
			}
		}
		m.appendLog("📴 %s 掉线了", payload.PlayerName)

	case protocol.MsgPlayerReconnected:
		payload := parse[protocol.PlayerReconnectedPayload](msg)
		m.appendLog("📶 %s 回来了", payload.PlayerName)

	case protocol.MsgHostChanged:
		payload := parse[protocol.HostChangedPayload](msg)
		m.room.HostID = payload.NewHostID
		m.appendLog("👑 %s 成为新房主", payload.NewHostName)

	case protocol.MsgGameOver:
		payload := parse[protocol.GameOverPayload](msg)
		m.room = payload.Room
		m.phase = PhaseGameOver
		m.appendLog("🏁 游戏结束")

	case protocol.MsgLeaderboardResult:
		payload := parse[protocol.LeaderboardResultPayload](msg)
		m.leaderboard = payload.Entries
		m.phase = PhaseLeaderboard

	case protocol.MsgError:
		payload := parse[protocol.ErrorPayload](msg)
		m.error = payload.Message
		return clearErrorLater()
	}

	m.latency = m.client.GetLatency()
	return nil
}
