package app

import (
	"time"

	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr        string
	Environment     string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Checkpoint editor tuning.
	CheckpointToleranceSec  float64
	EnforceCheckpointBounds bool

	MediaStorageMode string
	MediaLocalDir    string
	CORSExtraOrigins string
	SeedOnBoot       bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		HTTPAddr:        envutil.GetEnv("HTTP_ADDR", ":8080", log),
		Environment:     envutil.GetEnv("APP_ENV", "development", log),
		JWTSecretKey:    envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)) * time.Second,

		CheckpointToleranceSec:  envutil.GetEnvAsFloat("CHECKPOINT_TOLERANCE_SEC", 0.25, log),
		EnforceCheckpointBounds: envutil.GetEnvAsBool("ENFORCE_CHECKPOINT_BOUNDS", true, log),

		MediaStorageMode: envutil.GetEnv("MEDIA_STORAGE_MODE", "local", log),
		MediaLocalDir:    envutil.GetEnv("MEDIA_LOCAL_DIR", "./media", log),
		CORSExtraOrigins: envutil.GetEnv("CORS_EXTRA_ORIGINS", "", log),
		SeedOnBoot:       envutil.GetEnvAsBool("SEED_ON_BOOT", true, log),
	}
}
