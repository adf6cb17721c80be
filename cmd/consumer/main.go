package main

import (
	"flag"

	"hris-core/internal/app"
	"hris-core/internal/config"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()

	infra, err := app.Connect(cfg, log)
	if err != nil {
		log.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	if err := app.RunConsumer(infra); err != nil {
		log.Fatal("run consumer failed", zap.Error(err))
	}
}
