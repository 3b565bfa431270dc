package main

import (
	"fmt"

	"github.com/amirasaad/bankledger/infra"
	"github.com/amirasaad/bankledger/infra/initializer"
	infrarepo "github.com/amirasaad/bankledger/infra/repository"
	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/amirasaad/bankledger/pkg/service/auth"
	"github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/amirasaad/bankledger/webapi"
	log "github.com/charmbracelet/log"
)

// @title Bank Ledger API
// @version 1.0.0
// @description Account ledger service: deposits, withdrawals, transfers and history
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := initializer.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	authSvc := auth.New(uow, cfg.Jwt, logger)
	ledgerSvc := ledger.New(uow, logger)

	app := webapi.New(ledgerSvc, authSvc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
