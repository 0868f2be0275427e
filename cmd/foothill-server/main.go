package main

import (
	"context"
	"flag"
	"log/slog"

	"foothill-backend/lib/configutil"
	"foothill-backend/lib/restyutil"
	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/lib/serviceutil"
	"foothill-backend/lib/sqliteutil"
	"foothill-backend/lib/telemetry"
	"foothill-backend/services/rmp"
	"foothill-backend/services/schedule"
	"foothill-backend/services/schedule/db"
)

type Config struct {
	// defaults to 8000
	Port int `json:"port"`
	// defaults to foothill.db
	Database string `json:"database"`
	// defaults to the public schedule page
	ScheduleUrl string `json:"schedule_url"`
	// when set, suggestions can be enriched with professor ratings
	RmpSchoolId string `json:"rmp_school_id"`
}

func initTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	tel, err := telemetry.SetupFromEnv(ctx, "foothill-server")
	if err != nil {
		slog.WarnContext(ctx, "telemetry disabled", "err", err)
		return
	}
	go func() {
		<-ctx.Done()
		tel.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()
	initTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Database == "" {
		cfg.Database = "foothill.db"
	}

	client, err := foothill.NewClient(foothill.ClientOptions{
		BaseUrl: cfg.ScheduleUrl,
	})
	if err != nil {
		serviceutil.Fatal("init schedule client", err)
	}
	if *verbose {
		client.SetDebugOutput(restyutil.NewFilesystemOutput(".dev/foothill/raw"))
	}

	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open db", err)
	}
	defer database.Close()

	store := schedule.NewStore(database)

	var ratings *rmp.Client
	if cfg.RmpSchoolId != "" {
		ratings, err = rmp.NewClient(rmp.ClientOptions{SchoolId: cfg.RmpSchoolId})
		if err != nil {
			serviceutil.Fatal("init ratings client", err)
		}
	}

	server := NewServer(schedule.NewService(client, store), store, ratings)

	go serviceutil.StartHttpServer(cfg.Port, server)
	<-ctx.Done()
}
