package main

import (
	"context"
	"net"
	"net/http"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/config"
	"github.com/bookswap/bookswap/pkg/database"
	"github.com/bookswap/bookswap/pkg/migrations"
	"github.com/bookswap/bookswap/pkg/server"
	"github.com/bookswap/bookswap/pkg/version"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting bookswap", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	var revocations auth.Revocations
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Err(err).Fatal("redis url error")
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Err(err).Fatal("redis connection error")
		}
		revocations = auth.NewRedisRevocations(rdb)
		log.Info("token revocation enabled")
	} else {
		log.Warn("redis_url not set, logout won't revoke tokens")
	}

	srv, err := server.New(cfg, db, revocations)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", srv.Addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}
		log.Info("server started", logger.Data{"addr": listener.Addr().String()})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Err(err).Error("redis close error")
		}
		log.Info("redis closed")
	}

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
