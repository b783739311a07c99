// Package main starts the wallet API to manage users, classes and money transfers.
package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/maktab-app/maktab-wallet/cmd/httpserver"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/pkg/configpkg"
	"github.com/maktab-app/maktab-wallet/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	var db *sql.DB

	if config.DBDriver != "memory" {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to database")
		}
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("WALLET API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
