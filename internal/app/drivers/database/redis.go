package database

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/pkg/constvars"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects the store that holds sessions and reset tokens
// and carries the session event channel.
func NewRedisClient(driverConfig *config.DriverConfig, log *zap.Logger) *redis.Client {
	options := redisOptions(driverConfig)
	rdb := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Could not connect to redis", zap.String(constvars.LoggingAddressKey, options.Addr), zap.Error(err))
	}
	log.Info("Connected to redis", zap.String(constvars.LoggingAddressKey, options.Addr))

	return rdb
}

func redisOptions(driverConfig *config.DriverConfig) *redis.Options {
	return &redis.Options{
		Addr:       fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password:   driverConfig.Redis.Password,
		ClientName: constvars.ConnectionName,
	}
}
