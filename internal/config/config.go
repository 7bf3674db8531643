package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/utils"
)

// Config holds the file-backed settings. Everything here can also come from
// the environment; env values win over the yaml file.
type Config struct {
	Port            string   `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	JWTSecretKey    string   `yaml:"jwt_secret_key"`
	AccessTokenTTL  int      `yaml:"access_token_ttl"`
	RefreshTokenTTL int      `yaml:"refresh_token_ttl"`
	RedisAddr       string   `yaml:"redis_addr"`
	RedisChannel    string   `yaml:"redis_channel"`
	GCSBucketName   string   `yaml:"gcs_bucket_name"`
	CDNDomain       string   `yaml:"cdn_domain"`
}

func Load(path string, log *logger.Logger) (*Config, error) {
	cfg := &Config{
		Port:            "8080",
		AccessTokenTTL:  3600,
		RefreshTokenTTL: 86400,
		RedisChannel:    "cart_snapshots",
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
			}
			if log != nil {
				log.Debug("Config file not found, using env/defaults", "path", path)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTL = utils.GetEnvAsInt("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)
	cfg.RefreshTokenTTL = utils.GetEnvAsInt("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.RedisChannel = utils.GetEnv("REDIS_CHANNEL", cfg.RedisChannel, log)
	cfg.GCSBucketName = utils.GetEnv("GCS_BUCKET_NAME", cfg.GCSBucketName, log)
	cfg.CDNDomain = utils.GetEnv("CDN_DOMAIN", cfg.CDNDomain, log)
	if origins := utils.GetEnv("ALLOWED_ORIGINS", "", log); origins != "" {
		cfg.AllowedOrigins = splitOrigins(origins)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "defaultsecret"
		if log != nil {
			log.Warn("JWT_SECRET_KEY not set, using insecure default")
		}
	}
	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
