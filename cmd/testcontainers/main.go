package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/notary-records/internal/logger"
	"github.com/localnerve/notary-records/internal/testutil"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "postgres", "database to start: postgres or mysql")
	var withRedis bool
	flag.BoolVar(&withRedis, "redis", true, "also start redis for the token blacklist")
	flag.Parse()

	usage := `
Start disposable notary-records stores for local development and print the
environment needed to point the server at them.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-db postgres|mysql] [-redis=false]

ENV_FILE_PATH: path to a .env file providing DB_DATABASE, DB_USER and DB_PASSWORD

example
  testcontainers -f /path/to/something/.env -db mysql
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.New(logger.Options{Level: "info", Format: "console", ServiceName: "testcontainers"})
	defer func() { _ = log.Sync() }()

	if envFilename != "" {
		log.Info("Loading environment variables", zap.String("file", envFilename))
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal("Failed to load environment variables", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := testutil.DockerAvailable(ctx); err != nil {
		log.Fatal("Docker is not available", zap.Error(err))
	}

	containers, err := testutil.StartContainers(ctx, testutil.ContainerOptions{
		DBType:   dbType,
		DBImage:  os.Getenv("DB_IMAGE"),
		Database: os.Getenv("DB_DATABASE"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Redis:    withRedis,
		Logf: func(format string, args ...any) {
			log.Info(fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		log.Fatal("Failed to create test containers", zap.Error(err))
	}

	cfg := containers.Config
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	if cfg.RedisAddr != "" {
		fmt.Printf("REDIS_ADDR=%s\n", cfg.RedisAddr)
	}

	<-ctx.Done()
	log.Info("Received signal, terminating test containers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := containers.Terminate(shutdownCtx); err != nil {
		log.Error("Failed to terminate test containers", zap.Error(err))
	}
}
