package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Federation    FederationConfig    `mapstructure:"federation"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	SlowQueryMs     int    `mapstructure:"slow_query_ms"`
}

// SlowQueryThreshold 慢查询阈值，<=0 表示不记录慢查询
func (d *DatabaseConfig) SlowQueryThreshold() time.Duration {
	return time.Duration(d.SlowQueryMs) * time.Millisecond
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	// DialTimeout 秒，也用于启动时的 Ping
	DialTimeout int `mapstructure:"dial_timeout"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置，web_videos / streaming_playlists 为对象存储中的媒体桶
type MinIOConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Endpoint           string `mapstructure:"endpoint"`
	AccessKey          string `mapstructure:"access_key"`
	SecretKey          string `mapstructure:"secret_key"`
	UseSSL             bool   `mapstructure:"use_ssl"`
	WebVideosBucket    string `mapstructure:"web_videos_bucket"`
	StreamingBucket    string `mapstructure:"streaming_playlists_bucket"`
	PublicBaseOverride string `mapstructure:"public_base_url"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// Topic 返回 topic 名称，未配置时使用 key 本身
func (k *KafkaConfig) Topic(key string) string {
	if t, ok := k.Topics[key]; ok && t != "" {
		return t
	}
	return key
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// VideosIndex 返回视频摘要索引名
func (e *ElasticsearchConfig) VideosIndex() string {
	if name := e.Index["videos"]; name != "" {
		return name
	}
	return "videos"
}

// FederationConfig 本节点对外地址与描述生成参数
type FederationConfig struct {
	Scheme           string `mapstructure:"scheme"`
	Hostname         string `mapstructure:"hostname"`
	Port             int    `mapstructure:"port"`
	WSScheme         string `mapstructure:"ws_scheme"`
	RemoteHTTPScheme string `mapstructure:"remote_http_scheme"`
	RemoteWSScheme   string `mapstructure:"remote_ws_scheme"`
	ThumbnailWidth   int    `mapstructure:"thumbnail_width"`
	ThumbnailHeight  int    `mapstructure:"thumbnail_height"`
	PreviewWidth     int    `mapstructure:"preview_width"`
	PreviewHeight    int    `mapstructure:"preview_height"`
	CacheTTL         int    `mapstructure:"cache_ttl"` // 秒
	RateLimit        int    `mapstructure:"rate_limit"`
	RateBurst        int    `mapstructure:"rate_burst"`
}

// CacheTTLDuration 返回联邦对象缓存时间
func (f *FederationConfig) CacheTTLDuration() time.Duration {
	return time.Duration(f.CacheTTL) * time.Second
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration 返回过期时间
func (j *JWTConfig) ExpireDuration() time.Duration {
	return time.Duration(j.ExpireHours) * time.Hour
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 当前生效配置，热更新时整体替换，不原地修改字段
var current atomic.Pointer[Config]

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("VIDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "vida-fed")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8000)
	v.SetDefault("federation.scheme", "http")
	v.SetDefault("federation.hostname", "localhost")
	v.SetDefault("federation.port", 8000)
	v.SetDefault("federation.ws_scheme", "ws")
	v.SetDefault("federation.remote_http_scheme", "https")
	v.SetDefault("federation.remote_ws_scheme", "wss")
	v.SetDefault("federation.thumbnail_width", 280)
	v.SetDefault("federation.thumbnail_height", 157)
	v.SetDefault("federation.preview_width", 850)
	v.SetDefault("federation.preview_height", 480)
	v.SetDefault("federation.cache_ttl", 300)
	v.SetDefault("federation.rate_limit", 20)
	v.SetDefault("federation.rate_burst", 40)
	v.SetDefault("database.slow_query_ms", 200)
	v.SetDefault("redis.dial_timeout", 5)
	v.SetDefault("kafka.group_id", "vida-fed-federation")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(cfg)
	return cfg, nil
}

// Watch 加载配置并监听文件变化；每次变化解析出新的 Config 后整体替换并回调 onChange
func Watch(configPath string, onChange func(*Config), onError func(error)) (*Config, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(cfg)

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		current.Store(next)
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()

	return cfg, nil
}

// Get 获取当前配置
func Get() *Config {
	cfg := current.Load()
	if cfg == nil {
		panic("config not loaded, please call Load() first")
	}
	return cfg
}

// Set 直接替换当前配置（测试与命令行工具使用）
func Set(cfg *Config) {
	current.Store(cfg)
}
