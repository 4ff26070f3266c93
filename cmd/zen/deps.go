package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/config"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	redisclient "github.com/NekroDarkmoon/Zen.A5E/internal/redis"
	"github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium"
	guildsettings "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings"
	rollhistory "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history"
)

// openStore opens the configured compendium store
func openStore(db config.DatabaseConfig) (compendium.Store, error) {
	switch db.Driver {
	case config.DriverPostgres:
		return compendium.NewPostgres(&compendium.PostgresConfig{
			DSN:             db.DSN,
			MaxOpenConns:    db.MaxOpenConns,
			MaxIdleConns:    db.MaxIdleConns,
			ConnMaxLifetime: db.ConnMaxLifetime,
			Logger:          log.Named("postgres"),
		})
	case config.DriverSQLite:
		return compendium.NewSQLite(&compendium.SQLiteConfig{
			Path:      db.Path,
			Threshold: db.Threshold,
			Logger:    log.Named("sqlite"),
		})
	default:
		return nil, errors.InvalidArgumentf("unknown database driver %q", db.Driver)
	}
}

// openRedis connects to the guild settings redis. With strict set, an
// unreachable server is an error; otherwise it is only logged and commands
// run without custom prefixes, the blacklist or roll history until it
// comes back.
func openRedis(ctx context.Context, rc config.RedisConfig, strict bool) (redisclient.Client, func(), error) {
	client, err := redisclient.NewClient(rc.Addr, &redisclient.Options{
		Password:        rc.Password,
		DB:              rc.DB,
		PoolSize:        rc.PoolSize,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      2,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	if err := redisclient.Ping(ctx, client); err != nil {
		if strict {
			cleanup()
			return nil, nil, err
		}
		log.Warn("redis unreachable, guild settings degraded", zap.String("addr", rc.Addr), zap.Error(err))
	}
	return client, cleanup, nil
}

// openSettings returns the guild settings store backed by client
func openSettings(client redisclient.Client) (guildsettings.Repository, error) {
	return guildsettings.NewRedisRepository(&guildsettings.Config{Client: client})
}

// openHistory returns the roll history store backed by client
func openHistory(client redisclient.Client, clk clock.Clock, bot config.BotConfig) (rollhistory.Repository, error) {
	return rollhistory.NewRedisRepository(&rollhistory.Config{
		Client:     client,
		Clock:      clk,
		TTL:        bot.HistoryTTL,
		MaxEntries: bot.HistorySize,
	})
}
