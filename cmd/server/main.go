package main

import (
	"context"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/app/server"

	httpadapter "dicehall/internal/adapter/http"
	metricsinmem "dicehall/internal/adapter/metrics/inmemory"
	gormrepo "dicehall/internal/adapter/repo/gorm"
	"dicehall/internal/adapter/repo/memory"
	"dicehall/internal/adapter/ws"
	"dicehall/internal/app/journal"
	"dicehall/internal/app/ports"
	"dicehall/internal/app/roll"
	"dicehall/internal/app/sheet"
)

type config struct {
	Addr string `env:"DICEHALL_ADDR" envDefault:":8080"`
	// DBDSN empty means in-memory repositories, for local play.
	DBDSN string `env:"DICEHALL_DB_DSN"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	sheets, logs, txManager := buildRepos(cfg)
	kpiRecorder := metricsinmem.NewRecorder()
	hub := ws.NewHub()

	h := httpadapter.Handler{
		RollUC:    roll.UseCase{Sheets: sheets, Metrics: kpiRecorder},
		SheetUC:   sheet.UseCase{Sheets: sheets, Tx: txManager},
		JournalUC: journal.UseCase{Log: logs},
		Hub:       hub,
		KPI:       kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	s.Use(httpadapter.CORSMiddleware())
	h.RegisterRoutes(s)

	log.Printf("dicehall server listening on %s", cfg.Addr)
	s.Spin()
}

func buildRepos(cfg config) (ports.SheetRepository, ports.CommandLogRepository, ports.TxManager) {
	if cfg.DBDSN == "" {
		log.Println("no DICEHALL_DB_DSN set, using in-memory repositories")
		store := memory.NewStore()
		return memory.NewSheetRepo(store), memory.NewCommandLogRepo(store), memory.NewTxManager()
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.AutoMigrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewSheetRepo(db), gormrepo.NewCommandLogRepo(db), gormrepo.NewTxManager(db)
}
