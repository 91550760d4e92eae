package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OriginChecker WebSocket 来源校验
type OriginChecker struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewOriginChecker 创建来源校验器，"*" 表示放行所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{allowedOrigins: make(map[string]bool)}
	for _, o := range origins {
		if o == "*" {
			oc.allowAll = true
			continue
		}
		oc.allowedOrigins[strings.TrimRight(o, "/")] = true
	}
	return oc
}

// CheckOrigin 校验请求来源，无 Origin 头视为非浏览器客户端放行
func (oc *OriginChecker) CheckOrigin(r *http.Request) bool {
	if oc.allowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return oc.allowedOrigins[strings.TrimRight(origin, "/")]
}

// MessageRateLimiter 单连接消息频率限制（简单滑动窗口）
type MessageRateLimiter struct {
	mu         sync.Mutex
	timestamps map[string][]time.Time
	maxPerSec  int
}

// NewMessageRateLimiter 创建消息限流器
func NewMessageRateLimiter(maxPerSec int) *MessageRateLimiter {
	return &MessageRateLimiter{
		timestamps: make(map[string][]time.Time),
		maxPerSec:  maxPerSec,
	}
}

// Allow 判断该连接当前是否允许再处理一条消息
func (l *MessageRateLimiter) Allow(connID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-time.Second)

	ts := l.timestamps[connID]
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.maxPerSec {
		l.timestamps[connID] = kept
		return false
	}

	l.timestamps[connID] = append(kept, now)
	return true
}

// Remove 连接断开时清理计数
func (l *MessageRateLimiter) Remove(connID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.timestamps, connID)
}

// GetClientIP 获取客户端真实 IP，兼容反向代理
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
