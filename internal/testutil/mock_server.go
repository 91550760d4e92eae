//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/dice-party/internal/types"
)

// FakeServer 实现 types.ServerInterface 的简单内存版本
// 按连接 ID 路由消息，供处理器测试使用
type FakeServer struct {
	mu          sync.RWMutex
	clients     map[string]types.ClientInterface
	maintenance bool
}

func NewFakeServer() *FakeServer {
	return &FakeServer{clients: make(map[string]types.ClientInterface)}
}

func (s *FakeServer) IsMaintenanceMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maintenance
}

func (s *FakeServer) SetMaintenanceMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maintenance = on
}

func (s *FakeServer) GetOnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *FakeServer) GetClientByID(id string) types.ClientInterface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[id]
}

func (s *FakeServer) RegisterClient(id string, client types.ClientInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = client
}

func (s *FakeServer) UnregisterClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}
