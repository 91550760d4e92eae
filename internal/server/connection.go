package server

import (
	"log"
	"net/http"

	"github.com/palemoky/dice-party/internal/protocol"
)

// handleWebSocket 处理 WebSocket 连接请求
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 维护模式拒绝新连接
	if s.IsMaintenanceMode() {
		http.Error(w, "server under maintenance", http.StatusServiceUnavailable)
		return
	}

	// 来源校验
	if !s.originChecker.CheckOrigin(r) {
		log.Printf("🚫 拒绝来源: %s (IP: %s)", r.Header.Get("Origin"), GetClientIP(r))
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	// 信号量控制最大连接数
	select {
	case s.semaphore <- struct{}{}:
	default:
		http.Error(w, "server is full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		s.releaseSlot()
		return
	}

	client := NewClient(s, conn)
	client.IP = GetClientIP(r)
	s.RegisterClient(client.ID, client)

	log.Printf("📶 客户端 %s 已连接 (IP: %s)，当前在线: %d", client.Name, client.IP, s.GetOnlineCount())

	// 告知连接 ID，客户端后续用它对账
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ConnectionID: client.ID,
	}))

	go client.WritePump()
	go client.ReadPump()
}

// releaseSlot 释放一个连接名额
func (s *Server) releaseSlot() {
	select {
	case <-s.semaphore:
	default:
	}
}
