package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	turnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("48")).Bold(true)
)

// 格子类型的显示符号
var tileIcons = map[string]string{
	"START":     "🏁",
	"NORMAL":    "·",
	"CHALLENGE": "⚡",
	"BONUS":     "⭐",
	"PENALTY":   "💀",
	"FINISH":    "🏆",
}

func (m *Model) View() string {
	var b strings.Builder

	switch m.phase {
	case PhaseConnecting:
		b.WriteString(titleStyle("🎲 Dice Party"))
		b.WriteString("\n\n正在连接服务器...")

	case PhaseName:
		b.WriteString(titleStyle("🎲 Dice Party"))
		b.WriteString("\n\n你的昵称（留空随机）：\n")
		b.WriteString(m.input.View())
		b.WriteString(promptStyle.Render("\nenter 确认 · esc 退出"))

	case PhaseMenu:
		b.WriteString(titleStyle("🎲 Dice Party"))
		b.WriteString(fmt.Sprintf("\n\n你好，%s！\n", m.displayName()))
		b.WriteString("\n  [c] 创建房间\n  [j] 加入房间\n  [l] 积分榜\n  [q] 退出\n")

	case PhaseJoinInput:
		b.WriteString(titleStyle("加入房间"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString(promptStyle.Render("\nenter 加入 · esc 返回"))

	case PhaseWaiting:
		b.WriteString(m.viewLobby())

	case PhasePlaying, PhaseChallenge, PhaseVoting:
		b.WriteString(m.viewGame())

	case PhaseGameOver:
		b.WriteString(m.viewGameOver())

	case PhaseLeaderboard:
		b.WriteString(m.viewLeaderboard())
	}

	if m.error != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("⚠ " + m.error))
	}
	if m.latency > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n\n延迟 %dms", m.latency)))
	}

	return docStyle.Render(b.String())
}

func (m *Model) displayName() string {
	if m.playerName != "" {
		return m.playerName
	}
	return "神秘玩家"
}

// viewLobby 等待开局的房间视图
func (m *Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(titleStyle("房间 " + m.room.Code))
	b.WriteString(fmt.Sprintf("\n\n玩家（%d/%d）：\n", len(m.room.Players), m.room.MaxPlayers))

	for _, p := range m.room.Players {
		line := "  " + p.Name
		if p.ID == m.room.HostID {
			line += " 👑"
		}
		if p.ID == m.myID() {
			line += " (你)"
		}
		if !p.IsConnected {
			line = dimStyle.Render(line + " [离线]")
		}
		b.WriteString(line + "\n")
	}

	if m.isHost() {
		b.WriteString(promptStyle.Render("\n[s] 开始游戏 · esc 离开房间"))
	} else {
		b.WriteString(promptStyle.Render("\n等待房主开始 · esc 离开房间"))
	}
	return b.String()
}

// viewGame 对局视图：棋盘、玩家进度、事件日志和操作提示
func (m *Model) viewGame() string {
	var b strings.Builder
	b.WriteString(titleStyle("房间 " + m.room.Code))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderBoard()))
	b.WriteString("\n\n")

	for i, p := range m.room.Players {
		marker := "  "
		if i == m.room.CurrentTurn {
			marker = turnStyle.Render("▶ ")
		}
		line := fmt.Sprintf("%s%s 第 %d 格", marker, p.Name, p.Position)
		if !p.IsConnected {
			line = dimStyle.Render(line + " [离线]")
		}
		b.WriteString(line + "\n")
	}

	if len(m.log) > 0 {
		b.WriteString("\n")
		for _, line := range m.log {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}

	b.WriteString(m.viewActionHint())
	return b.String()
}

// renderBoard 单行棋盘，玩家位置以数字标注
func (m *Model) renderBoard() string {
	if m.room.Board == nil {
		return ""
	}

	occupied := make(map[int]int) // 位置 -> 玩家序号（1 起）
	for i, p := range m.room.Players {
		occupied[p.Position] = i + 1
	}

	var b strings.Builder
	for _, tile := range m.room.Board.Tiles {
		if n, ok := occupied[tile.Position]; ok {
			b.WriteString(fmt.Sprintf("%d", n))
			continue
		}
		icon, ok := tileIcons[tile.Type]
		if !ok {
			icon = "·"
		}
		b.WriteString(icon)
	}
	return b.String()
}

// viewActionHint 当前阶段的操作提示
func (m *Model) viewActionHint() string {
	switch m.phase {
	case PhaseChallenge:
		return m.viewChallenge()
	case PhaseVoting:
		if m.challenger == m.myID() {
			return promptStyle.Render(fmt.Sprintf("\n🗳️ 等待裁决（%d/%d 票）...", m.votesCast, m.totalVoters))
		}
		return promptStyle.Render(fmt.Sprintf("\n🗳️ 挑战成功了吗？[y] 成功 / [n] 失败（%d/%d 票）", m.votesCast, m.totalVoters))
	}

	if m.myTurn {
		return promptStyle.Render("\n[r] 掷骰子")
	}
	hint := "\n等待其他玩家..."
	if m.isHost() {
		hint += " · [e] 结束游戏"
	}
	return promptStyle.Render(hint)
}

// viewChallenge 挑战面板
func (m *Model) viewChallenge() string {
	if m.challenge == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	c := m.challenge
	mine := m.challenger == m.myID()

	if len(c.Answers) > 0 {
		b.WriteString(boxStyle.Render(fmt.Sprintf("❓ %s（%d 分）", c.Question, c.Points)))
		b.WriteString("\n")
		for i, a := range c.Answers {
			b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, a))
		}
		if mine {
			b.WriteString(promptStyle.Render("按数字键作答"))
		} else {
			b.WriteString(promptStyle.Render("等待对方作答..."))
		}
		return b.String()
	}

	b.WriteString(boxStyle.Render(fmt.Sprintf("⚡ %s（%d 分）", c.Action, c.Points)))
	if mine {
		b.WriteString(promptStyle.Render("\n[y] 完成 · [n] 放弃 · [v] 让大家投票"))
	} else {
		b.WriteString(promptStyle.Render("\n围观中..."))
	}
	return b.String()
}

// viewGameOver 终局视图
func (m *Model) viewGameOver() string {
	var b strings.Builder
	b.WriteString(titleStyle("🏁 游戏结束"))
	b.WriteString("\n\n最终位置：\n")

	for _, p := range m.room.Players {
		b.WriteString(fmt.Sprintf("  %s — 第 %d 格\n", p.Name, p.Position))
	}

	b.WriteString(promptStyle.Render("\n[l] 查看积分榜 · esc 返回菜单"))
	return b.String()
}

// viewLeaderboard 积分榜视图
func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(titleStyle("🏆 积分榜"))
	b.WriteString("\n\n")

	if len(m.leaderboard) == 0 {
		b.WriteString(dimStyle.Render("暂时还没有人得分"))
	}
	for i, e := range m.leaderboard {
		b.WriteString(fmt.Sprintf("  %2d. %-20s %d\n", i+1, e.PlayerName, e.Points))
	}

	b.WriteString(promptStyle.Render("\nesc 返回"))
	return b.String()
}
