package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zefrenchwan/standardnames.git/serving"
	"github.com/zefrenchwan/standardnames.git/storage"
)

func main() {
	logger := buildLogger(os.Getenv("SNT_LOG_LEVEL"))
	defer logger.Sync()

	dburl := os.Getenv("SNT_DB_URL")
	if dburl == "" {
		logger.Fatal("no database set")
	}

	servingPort := os.Getenv("SNT_PORT")
	if !strings.HasPrefix(servingPort, ":") {
		logger.Fatal(fmt.Sprintf("invalid port %s : it should be a : and a valid number", servingPort))
	}

	strictUnits := false
	if value := os.Getenv("SNT_STRICT_UNITS"); value != "" {
		if parsed, err := strconv.ParseBool(value); err != nil {
			logger.Fatal("invalid SNT_STRICT_UNITS", zap.Error(err))
		} else {
			strictUnits = parsed
		}
	}

	currentContext := context.Background()
	dao, errDao := storage.NewDao(currentContext, dburl)
	if errDao != nil {
		logger.Fatal("failed to build dao", zap.Error(errDao))
	} else {
		defer dao.Close()
	}

	if err := dao.CreateSchema(currentContext); err != nil {
		logger.Fatal("failed to create schema", zap.Error(err))
	}

	// first user, to create the others through the service
	if login := os.Getenv("SNT_ADMIN_LOGIN"); login != "" {
		if err := dao.UpsertUser(currentContext, login, login, os.Getenv("SNT_ADMIN_PASSWORD")); err != nil {
			logger.Fatal("failed to create admin user", zap.Error(err))
		}
	}

	mux, errMux := serving.InitService(&dao, currentContext, logger.Sugar(), serving.ServiceOptions{StrictUnits: strictUnits})
	if errMux != nil {
		logger.Fatal("failed to init service", zap.Error(errMux))
	}

	logger.Info("serving standard name tables", zap.String("port", servingPort), zap.Bool("strict_units", strictUnits))
	if err := http.ListenAndServe(servingPort, mux); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// buildLogger returns a production logger at level, info if level is empty or invalid
func buildLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	if parsed, err := zapcore.ParseLevel(level); err == nil && level != "" {
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %s", err.Error()))
	}

	return logger
}
