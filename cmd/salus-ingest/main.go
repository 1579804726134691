package main

import (
	"context"
	"os/signal"
	"syscall"

	"salus/internal/modkit/repokit"
	"salus/internal/platform/config"
	"salus/internal/platform/logger"
	phttp "salus/internal/platform/net/http"
	"salus/internal/platform/store"

	"salus/internal/services/ingest"
)

func main() {
	// service-scoped config for HTTP etc (CORE_INGEST_*)
	root := config.New()
	svcCfg := root.Prefix("CORE_INGEST_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres registry + clickhouse events)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "salus",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:     true,
				URL:         chCfg.MustString("DBURL"),
				Tag:         "ingest",
				DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when either backend is unreachable
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_INGEST_PORT / CORE_INGEST_ADDR)
	srv := phttp.NewServer(svcCfg)

	ingest.Mount(
		srv.Router(),
		ingest.Options{
			Config:         svcCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  svcCfg.MayBool("SWAGGER", true),
			EnableProfiler: svcCfg.MayBool("PROFILER", true),
		},
	)

	// run until killed; SIGINT/SIGTERM drains in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
