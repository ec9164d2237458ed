package main

import (
	"os"

	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/server"

	log "github.com/sirupsen/logrus"
)

// @title           Taskboard API
// @version         1.0
// @description     Kanban boards with ordered columns and cards.

// @host      localhost:4000
// @BasePath  /

// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("Logger initialization failed")
	}

	s, err := server.Init(cfg, l)
	if err != nil {
		l.WithError(err).Fatal("Server initialization failed")
	}

	s.Run()
}
