package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"boardTracker/internal/app"
	"boardTracker/internal/config"
)

func main() {
	rollback := flag.Bool("rollback", false, "откатить миграции и выйти")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)

	if *rollback {
		if err := application.Rollback(ctx); err != nil {
			log.Fatalf("откат миграций: %v", err)
		}
		return
	}

	if err := application.Init(ctx); err != nil {
		log.Fatalf("инициализация приложения: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("работа приложения: %v", err)
	}
}
