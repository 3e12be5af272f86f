package config

import (
	"fmt"
	"strings"

	"github.com/blindbox-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Blindbox BlindboxConfig `mapstructure:"blindbox"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	DrawRateLimit RateLimitConfig `mapstructure:"draw_rate_limit"`
}

// RateLimitConfig 限流配置（下单与开盒共用）
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// ProbabilityConfig 默认概率配置（数据库中不存在时写入）
type ProbabilityConfig struct {
	Common int `mapstructure:"common"`
	Rare   int `mapstructure:"rare"`
	Secret int `mapstructure:"secret"`
}

// BlindboxConfig 盲盒业务配置
type BlindboxConfig struct {
	DefaultProbabilities   ProbabilityConfig `mapstructure:"default_probabilities"`
	MaxCheckoutQuantity    int               `mapstructure:"max_checkout_quantity"`
	ImageDir               string            `mapstructure:"image_dir"`
	SeedOnStart            bool              `mapstructure:"seed_on_start"`
	ProductCacheTTLSeconds int               `mapstructure:"product_cache_ttl_seconds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/blindbox.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "bb")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{
		"default": 1,
	})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.draw_rate_limit.window_seconds", 60)
	v.SetDefault("security.draw_rate_limit.max_requests", 120)
	v.SetDefault("blindbox.default_probabilities.common", 60)
	v.SetDefault("blindbox.default_probabilities.rare", 30)
	v.SetDefault("blindbox.default_probabilities.secret", 10)
	v.SetDefault("blindbox.max_checkout_quantity", 100)
	v.SetDefault("blindbox.image_dir", "./img")
	v.SetDefault("blindbox.seed_on_start", true)
	v.SetDefault("blindbox.product_cache_ttl_seconds", 10)
}

// Load 从 config.yml 加载配置（当前目录、上级目录或 etc 目录）
func Load() *Config {
	cfg, err := load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFile 从指定文件加载配置
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("../")   // 如果从 cmd/server 运行
		v.AddConfigPath("./etc") // etc 文件夹
	}
	setDefaults(v)

	// 环境变量支持，例如 server.port -> SERVER_PORT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s failed: %w", path, err)
		}
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		return nil, fmt.Errorf("配置解析失败: %w", err)
	}
	return &cfg, nil
}
