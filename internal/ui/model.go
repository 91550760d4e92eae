package ui

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/dice-party/internal/client"
	"github.com/palemoky/dice-party/internal/protocol"
)

// 游戏阶段
type Phase int

const (
	PhaseConnecting Phase = iota
	PhaseName
	PhaseMenu
	PhaseJoinInput
	PhaseWaiting
	PhasePlaying
	PhaseChallenge
	PhaseVoting
	PhaseGameOver
	PhaseLeaderboard
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ClearErrorMsg 清除错误消息
type ClearErrorMsg struct{}

// Model 派对模式的 bubbletea model
type Model struct {
	client *client.Client
	phase  Phase
	error  string

	playerName string
	latency    int64

	// 房间与棋局状态，完全由服务器消息驱动
	room        protocol.RoomInfo
	lastRoll    int
	myTurn      bool
	challenge   *protocol.ChallengeInfo
	challenger  string // 挑战归属的玩家 ID
	voteStarted bool
	votesCast   int
	totalVoters int
	leaderboard []protocol.LeaderboardEntry

	// 事件日志，最新的在最后
	log []string

	input  textinput.Model
	width  int
	height int
}

// NewModel 创建联机派对 model
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入昵称..."
	ti.CharLimit = 24
	ti.Width = 26
	ti.Focus()

	return &Model{
		client: client.NewClient(serverURL),
		phase:  PhaseConnecting,
		input:  ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connectToServer(), textinput.Blink)
}

// connectToServer 连接服务器
func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

// myID 当前连接 ID
func (m *Model) myID() string {
	return m.client.ConnectionID
}

// isHost 自己是否房主
func (m *Model) isHost() bool {
	return m.room.HostID == m.myID()
}

// me 自己的玩家信息
func (m *Model) me() *protocol.PlayerInfo {
	for i := range m.room.Players {
		if m.room.Players[i].ID == m.myID() {
			return &m.room.Players[i]
		}
	}
	return nil
}

// appendLog 追加一行事件日志，只保留最近 8 条
func (m *Model) appendLog(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
	if len(m.log) > 8 {
		m.log = m.log[len(m.log)-8:]
	}
}

// parse 解包 payload，失败时返回零值（服务器消息默认可信）
func parse[T any](msg *protocol.Message) T {
	var payload T
	_ = json.Unmarshal(msg.Payload, &payload)
	return payload
}

// clearErrorLater 几秒后清除错误提示
func clearErrorLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
