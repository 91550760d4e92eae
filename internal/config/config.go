package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host" env:"SERVER_HOST"`
	Port           int    `yaml:"port" env:"SERVER_PORT"`
	MaxConnections int    `yaml:"max_connections" env:"SERVER_MAX_CONNECTIONS"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MaxPlayers  int `yaml:"max_players" env:"GAME_MAX_PLAYERS"`   // 房间人数上限 2-20
	BoardSize   int `yaml:"board_size" env:"GAME_BOARD_SIZE"`     // 棋盘格子数 20-100
	TurnTimeout int `yaml:"turn_timeout" env:"GAME_TURN_TIMEOUT"` // 回合超时（秒）
	RoomTTL     int `yaml:"room_ttl" env:"GAME_ROOM_TTL"`         // 房间过期时间（分钟）
	VoteTTL     int `yaml:"vote_ttl" env:"GAME_VOTE_TTL"`         // 投票过期时间（分钟）
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins      []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	MessageMaxPerSecond int      `yaml:"message_max_per_second" env:"MESSAGE_MAX_PER_SECOND"`
}

// TurnTimeoutDuration 返回回合超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// RoomTTLDuration 返回房间过期时长
func (c *GameConfig) RoomTTLDuration() time.Duration {
	return time.Duration(c.RoomTTL) * time.Minute
}

// VoteTTLDuration 返回投票过期时长
func (c *GameConfig) VoteTTLDuration() time.Duration {
	return time.Duration(c.VoteTTL) * time.Minute
}

// Load 加载配置文件，环境变量优先于文件
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 环境变量覆盖
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	// 环境变量仍然生效
	_ = env.Parse(cfg)
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 设置默认值
func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1780
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1000
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = 8
	}
	if cfg.Game.MaxPlayers < 2 {
		cfg.Game.MaxPlayers = 2
	}
	if cfg.Game.MaxPlayers > 20 {
		cfg.Game.MaxPlayers = 20
	}
	if cfg.Game.BoardSize == 0 {
		cfg.Game.BoardSize = 50
	}
	if cfg.Game.BoardSize < 20 {
		cfg.Game.BoardSize = 20
	}
	if cfg.Game.BoardSize > 100 {
		cfg.Game.BoardSize = 100
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 60
	}
	if cfg.Game.RoomTTL == 0 {
		cfg.Game.RoomTTL = 240 // 4 小时
	}
	if cfg.Game.VoteTTL == 0 {
		cfg.Game.VoteTTL = 5
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		cfg.Security.AllowedOrigins = []string{"*"}
	}
	if cfg.Security.MessageMaxPerSecond == 0 {
		cfg.Security.MessageMaxPerSecond = 20
	}
}
