package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every FoodPOS service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Media     MediaConfig     `yaml:"media"`
	Upstreams UpstreamsConfig `yaml:"upstreams"`
}

type HTTPConfig struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	PublicBaseURL string        `yaml:"public_base_url"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type KafkaConfig struct {
	Broker     string `yaml:"broker"`
	OrderTopic string `yaml:"order_topic"`
	GroupID    string `yaml:"group_id"`
}

type MediaConfig struct {
	Root        string `yaml:"root"`
	FrontendDir string `yaml:"frontend_dir"`
}

type UpstreamsConfig struct {
	PosSvcURL       string `yaml:"pos_svc_url"`
	AnalyticsSvcURL string `yaml:"analytics_svc_url"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:          ":8081",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  15 * time.Second,
			PublicBaseURL: "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "foodpos",
			SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Kafka: KafkaConfig{OrderTopic: "order-events", GroupID: "agg-svc"},
		Media: MediaConfig{Root: "./media", FrontendDir: "./frontend"},
		Upstreams: UpstreamsConfig{
			PosSvcURL:       "http://localhost:8081",
			AnalyticsSvcURL: "http://localhost:8083",
		},
	}
}

// Option adjusts the defaults before the file and environment are applied.
type Option func(*Config)

// WithAddr sets the default listen address of the calling service.
func WithAddr(addr string) Option {
	return func(c *Config) { c.HTTP.Addr = addr }
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment. A .env file in the working directory is loaded first if present.
// Environment variables take precedence over the YAML file.
func Load(path string, opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.PublicBaseURL = getEnv("PUBLIC_BASE_URL", c.HTTP.PublicBaseURL)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)

	c.Kafka.Broker = getEnv("KAFKA_BROKER", c.Kafka.Broker)
	c.Kafka.OrderTopic = getEnv("KAFKA_ORDER_TOPIC", c.Kafka.OrderTopic)
	c.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", c.Kafka.GroupID)

	c.Media.Root = getEnv("MEDIA_ROOT", c.Media.Root)
	c.Media.FrontendDir = getEnv("FRONTEND_DIR", c.Media.FrontendDir)

	c.Upstreams.PosSvcURL = getEnv("POS_SVC_URL", c.Upstreams.PosSvcURL)
	c.Upstreams.AnalyticsSvcURL = getEnv("ANALYTICS_SVC_URL", c.Upstreams.AnalyticsSvcURL)

	var err error
	if c.Database.Port, err = getEnvInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	if c.Redis.Port, err = getEnvInt("REDIS_PORT", c.Redis.Port); err != nil {
		return err
	}
	if c.HTTP.ReadTimeout, err = getEnvDuration("HTTP_READ_TIMEOUT", c.HTTP.ReadTimeout); err != nil {
		return err
	}
	if c.HTTP.WriteTimeout, err = getEnvDuration("HTTP_WRITE_TIMEOUT", c.HTTP.WriteTimeout); err != nil {
		return err
	}
	return nil
}

// DSN returns a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}

// OpenPostgres opens the lib/pq pool and checks the connection.
func OpenPostgres(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// OpenRedis creates the client and checks the connection.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

func MustInitPostgres(ctx context.Context, cfg DatabaseConfig, log *slog.Logger) *sql.DB {
	db, err := OpenPostgres(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	return db
}

func MustInitRedis(ctx context.Context, cfg RedisConfig, log *slog.Logger) *redis.Client {
	client, err := OpenRedis(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.OrderTopic,
		GroupID: cfg.GroupID,
	})
}

// NewKafkaWriter returns nil when no broker is configured, which disables
// event publishing.
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if cfg.Broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  cfg.OrderTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return d, nil
}
