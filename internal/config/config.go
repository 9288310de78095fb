// Package config 读取 .env 与环境变量。
package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

const defaultSessionSecret = "secret_key_change_me"

// SMTP 邮件配置，Host 为空时不发送邮件
type SMTP struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Enabled 是否配置了邮件服务
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.User != ""
}

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	SiteURL       string
	LogLevel      string
	LogFile       string
	ImgurClientID string
	TemplatesDir  string
	SMTP          SMTP
}

// Load 先加载 .env（不存在时忽略），再从环境变量读取，缺省值与本地开发环境一致
func Load() (*Config, bool) {
	foundEnv := godotenv.Load() == nil

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yuepai port=5432 sslmode=disable TimeZone=Asia/Shanghai"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SiteURL:       getEnv("SITE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		ImgurClientID: os.Getenv("IMGUR_CLIENT_ID"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "./web/templates"),
		SMTP: SMTP{
			Host: os.Getenv("SMTP_HOST"),
			Port: getEnvInt("SMTP_PORT", 587),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	return cfg, foundEnv
}

// DefaultSecret 是否仍在使用默认的会话密钥
func (c *Config) DefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

// SessionKeys 由 SESSION_SECRET 派生 cookie 的签名密钥(64 字节)和加密密钥(32 字节)
func (c *Config) SessionKeys() (authKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(c.SessionSecret), nil, []byte("yuepai session"))
	authKey = make([]byte, 64)
	encKey = make([]byte, 32)
	if _, err = io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("派生签名密钥失败: %w", err)
	}
	if _, err = io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("派生加密密钥失败: %w", err)
	}
	return authKey, encKey, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
