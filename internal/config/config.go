package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig            `mapstructure:"postgres"`  // PostgreSQL配置
	Providers map[string]ProviderConfig `mapstructure:"providers"` // 多数据源独立配置
	Scouting  ScoutingConfig            `mapstructure:"scouting"`  // 侦察业务配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// ProviderConfig 单个外部数据源的独立配置
type ProviderConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	AuthKey    string `mapstructure:"auth_key"`    // API Key（FRC Events 为 Basic 密钥，TBA 为 X-TBA-Auth-Key）
	Username   string `mapstructure:"username"`    // FRC Events 专属 Basic 用户名
	Proxy      string `mapstructure:"proxy"`       // 代理地址
}

// ScoutingConfig 侦察业务配置
type ScoutingConfig struct {
	Season     int `mapstructure:"season"`      // 赛季年份（拼API路径用）
	CounterMax int `mapstructure:"counter_max"` // 单字段计数上限（越界夹断）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	if cfg.Scouting.Season == 0 {
		cfg.Scouting.Season = 2025
	}
	if cfg.Scouting.CounterMax == 0 {
		cfg.Scouting.CounterMax = 99
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if f, ok := cfg.Providers["frcevents"]; ok {
		if v := os.Getenv("FRC_API_USERNAME"); v != "" {
			f.Username = v
		}
		if v := os.Getenv("FRC_API_KEY"); v != "" {
			f.AuthKey = v
		}
		cfg.Providers["frcevents"] = f
	}
	if t, ok := cfg.Providers["tba"]; ok {
		if v := os.Getenv("TBA_AUTH_KEY"); v != "" {
			t.AuthKey = v
		}
		cfg.Providers["tba"] = t
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}
