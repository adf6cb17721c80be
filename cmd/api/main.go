package main

import (
	"flag"

	"hris-core/internal/app"
	"hris-core/internal/bootstrap"
	"hris-core/internal/config"
	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/logger"

	"github.com/gin-gonic/gin"
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

	r := gin.New()
	r.Use(gin.Recovery())

	if err := app.BuildApp(r, infra); err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}

	if err := bootstrap.StartHTTPServer(r, cfg.Server, infra.Audit, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}
