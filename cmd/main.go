package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"home_climate/internal/broker"
	"home_climate/internal/config"
	"home_climate/internal/handlers"
	"home_climate/internal/ingest"
	"home_climate/internal/logger"
	"home_climate/internal/mirror"
	"home_climate/internal/repository"
	"home_climate/internal/repository/db"
	"home_climate/internal/server"
	"home_climate/internal/service"
	"home_climate/internal/weather"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mq *broker.Client
	if cfg.MQTTNeeded() {
		if mq, err = broker.Connect(cfg.MQTT, log); err != nil {
			log.Fatalw("failed to connect mqtt", "err", err)
		}
		defer mq.Disconnect()
	}

	repos := repository.NewRepository(sqlDB)

	sinks, closeSinks := buildSinks(ctx, cfg, repos, mq, log)
	defer closeSinks()

	dispatcher := mirror.NewDispatcher(mirror.Options{
		Workers:   cfg.Mirror.Workers,
		QueueSize: cfg.Mirror.QueueSize,
		Timeout:   cfg.Mirror.Timeout,
	}, log, sinks...)

	var bg sync.WaitGroup
	bg.Add(1)
	go func() {
		defer bg.Done()
		dispatcher.Run(ctx)
	}()

	// wire dependencies
	services := service.NewService(repos, service.Deps{
		Mirror:   dispatcher,
		Weather:  weather.NewClient(cfg.Weather, log),
		Timezone: cfg.Timezone,
		Log:      log,
	})
	apiHandler := handlers.NewHandler(services, log)

	if cfg.MQTT.IngestEnabled {
		sub := ingest.NewSubscriber(mq, services.Telemetry, log)
		if err := sub.Start(ctx, cfg.MQTT.TelemetryTopic, cfg.MQTT.QoS); err != nil {
			log.Fatalw("failed to subscribe telemetry topic", "err", err)
		}
	}

	if cfg.Simulator.Enabled {
		bg.Add(1)
		go func() {
			defer bg.Done()
			services.Simulator.Run(ctx, cfg.Simulator.Tick)
		}()
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "sinks", len(sinks), "simulator", cfg.Simulator.Enabled)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
	bg.Wait()
}

// buildSinks creates the enabled mirror sinks. The returned func releases
// their connections.
func buildSinks(ctx context.Context, cfg *config.Config, repos *repository.Repository, mq *broker.Client, log *logger.Logger) ([]mirror.Sink, func()) {
	var (
		sinks   []mirror.Sink
		closers []func()
	)

	if cfg.Mirror.LocalLog {
		sinks = append(sinks, mirror.NewStoreSink(repos.Commands))
	}

	if fb := cfg.Mirror.Firebase; fb.Enabled {
		sinks = append(sinks, mirror.NewFirebaseSink(fb.URL, fb.SensorPath, fb.CmdsPath, cfg.Mirror.Timeout))
	}

	if rc := cfg.Mirror.Redis; rc.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Mirror.Timeout)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// go-redis reconnects on demand; pushes fail and are logged meanwhile.
			log.Warnw("redis_unreachable_at_startup", "addr", rc.Addr, "err", err)
		}
		cancel()
		sinks = append(sinks, mirror.NewRedisSink(rdb, rc.KeyPrefix, rc.MaxCmds))
		closers = append(closers, func() { _ = rdb.Close() })
	}

	if cfg.Mirror.MQTTEnabled && mq != nil {
		sinks = append(sinks, mirror.NewMQTTSink(mq, cfg.Mirror.TopicPrefix, cfg.MQTT.QoS))
	}

	for _, s := range sinks {
		log.Infow("mirror_sink_enabled", "sink", s.Name())
	}
	if !cfg.Mirror.Firebase.Enabled {
		log.Infow("mirror_firebase_disabled", "hint", "set mirror.firebase.enabled to mirror to the realtime database")
	}
	return sinks, func() {
		for _, c := range closers {
			c()
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
