package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/dice-party/internal/config"
	"github.com/palemoky/dice-party/internal/game/challenge"
	"github.com/palemoky/dice-party/internal/game/room"
	"github.com/palemoky/dice-party/internal/server/handler"
	"github.com/palemoky/dice-party/internal/server/storage"
	"github.com/palemoky/dice-party/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 真正的来源校验在 originChecker，见 handleWebSocket
	},
}

// Server WebSocket 服务器
type Server struct {
	config    *config.Config
	redis     *redis.Client
	store     *storage.RedisStore
	registry  *room.Registry
	provider  *challenge.Provider
	clients   map[string]*Client
	clientsMu sync.RWMutex
	handler   *handler.Handler

	// 安全组件
	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	httpServer *http.Server
	cancel     context.CancelFunc
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化 Redis 客户端
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	store := storage.NewRedisStore(rdb, cfg.Game.RoomTTLDuration(), cfg.Game.VoteTTLDuration())

	s := &Server{
		config:         cfg,
		redis:          rdb,
		store:          store,
		clients:        make(map[string]*Client),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageMaxPerSecond),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	// 房间注册表，自定义格子来源也是这个 store
	s.registry = room.NewRegistry(store, store, &cfg.Game)

	// 挑战提供器，主数据源不可用时自动降级
	s.provider = challenge.NewProvider(store)

	// 消息处理器
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:   s,
		Registry: s.registry,
		Provider: s.provider,
		Store:    store,
		Game:     &cfg.Game,
	})

	return s, nil
}

// Start 启动服务器，阻塞直到出错或 Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	r := chi.NewRouter()
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 服务器启动在 ws://%s/ws", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 周期性清理过期房间的内存残留（存储自身的过期才是权威）
	g.Go(func() error {
		s.registry.CleanupLoop(ctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown 优雅关闭
func (s *Server) Shutdown() {
	log.Println("👋 服务器正在关闭...")

	if s.cancel != nil {
		s.cancel()
	}

	s.clientsMu.Lock()
	for _, c := range s.clients {
		c.Close()
	}
	s.clientsMu.Unlock()

	_ = s.redis.Close()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleStats 运行状态接口
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"online":      s.GetOnlineCount(),
		"maintenance": s.IsMaintenanceMode(),
	})
}

// SetMaintenanceMode 设置维护模式（拒绝新连接）
func (s *Server) SetMaintenanceMode(on bool) {
	s.maintenanceMu.Lock()
	defer s.maintenanceMu.Unlock()
	s.maintenanceMode = on
}

// IsMaintenanceMode 是否维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GetOnlineCount 在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// GetClientByID 按连接 ID 获取客户端
func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

// RegisterClient 注册客户端
func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

// UnregisterClient 注销客户端
func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}
