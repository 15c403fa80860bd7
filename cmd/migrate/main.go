// Package main applies the fittude schema migrations.
//
//	migrate -env dev -config ./config.toml -env-file .env [up | down | status | version]
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/lcsouza2/fittude-data-repo/internal/config"
	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/logging"
	"github.com/lcsouza2/fittude-data-repo/internal/schema"
)

func main() {
	os.Exit(migrate())
}

func migrate() int {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	flushLogs := logging.Setup(logging.LoggerSetupParams{
		LogLevel:    cfg.LogLevel,
		LogToStdout: true,
		Environment: cfg.Environment,
	})
	defer flushLogs()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	secrets, err := config.LoadSecrets(*envFile)
	if err != nil {
		log.Errorf("load secrets: %s", err)
		return 1
	}
	if secrets.PostgresPassword == "" {
		log.Warnln("POSTGRES_PASSWORD not set")
	}

	sqlDB, err := sql.Open("postgres", db.ConnString(db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
		SSLMode:    cfg.PostgresSSLMode,
	}))
	if err != nil {
		log.Errorf("open db: %s", err)
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Errorf("close db: %s", err)
		}
	}()

	ctx := context.Background()
	switch command {
	case "up":
		err = schema.Migrate(ctx, sqlDB)
	case "down":
		err = schema.MigrateDown(ctx, sqlDB)
	case "status":
		err = schema.Status(ctx, sqlDB)
	case "version":
		var version int64
		version, err = schema.Version(ctx, sqlDB)
		if err == nil {
			log.Infof("schema version: %d", version)
		}
	default:
		log.Errorf("unknown command [%s], use one of: up, down, status, version", command)
		return 1
	}
	if err != nil {
		log.Errorf("%s: %s", command, err)
		return 1
	}
	return 0
}
