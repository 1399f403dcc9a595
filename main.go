package main

import (
	"fmt"
	"log"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/config"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/database"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/logger"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/mail"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/router"

	"go.uber.org/zap"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		zlog.Fatal("init database", zap.Error(err))
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("migrate database", zap.Error(err))
	}

	mailer := mail.NewSMTPSender(cfg.Mail)

	// setup router
	r := router.SetupRouter(cfg, db, mailer, zlog)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("run server", zap.Error(err))
	}
}
