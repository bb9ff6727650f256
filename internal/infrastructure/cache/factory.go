package cache

import (
	"github.com/tradeops/backend/internal/application/fx"
	"github.com/tradeops/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRateCache builds the rate cache for the configured deployment. It tries
// Redis first and falls back to an in-memory cache, which is fine for a
// single instance but does not share state across processes.
func NewRateCache(cfg config.RedisConfig, fxCfg config.FXConfig, logger *zap.Logger) fx.RateCache {
	redisCache, err := NewRedisRateCache(cfg, fxCfg.CacheTTL)
	if err == nil {
		logger.Info("using Redis rate cache", zap.String("addr", cfg.Addr()))
		return redisCache
	}

	logger.Warn("Redis unavailable, falling back to in-memory rate cache",
		zap.Error(err))
	return NewInMemoryRateCache(fxCfg.CacheTTL)
}
