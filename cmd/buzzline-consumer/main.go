package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/api"
	"github.com/wkarto/buzzline-04-karto/internal/config"
	"github.com/wkarto/buzzline-04-karto/internal/runner"
	"github.com/wkarto/buzzline-04-karto/internal/sink"
	"github.com/wkarto/buzzline-04-karto/internal/source"
	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

const (
	exitOK            = 0
	exitConfig        = 1
	exitSourceMissing = 2
	exitAdapterInit   = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	logger, _ := zap.NewProduction() //TODO - handle error
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.S().Errorw("invalid configuration", "error", err)
		return exitConfig
	}

	desc, err := cfg.Description()
	if err != nil {
		zap.S().Errorw("invalid variant description", "error", err)
		return exitConfig
	}

	red, err := reduce.NewReducer(desc)
	if err != nil {
		zap.S().Errorw("cannot build reducer", "error", err)
		return exitConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src source.Source
	switch cfg.SourceKind {
	case "file":
		src, err = source.NewFileSource(cfg.DataFile)
		if err != nil {
			zap.S().Errorw("data file unavailable", "path", cfg.DataFile, "error", err)
			return exitSourceMissing
		}
	default:
		src = source.NewKafkaSource(cfg.Brokers, cfg.Topic, cfg.GroupID)
	}

	sinks := []sink.Sink{sink.NewLogSink()}

	var store *sink.StoreSink
	if cfg.StorePath != "" {
		store, err = sink.NewStoreSink(cfg.StorePath, red.ID().String())
		if err != nil {
			zap.S().Errorw("cannot open snapshot store", "path", cfg.StorePath, "error", err)
			src.Close()
			return exitAdapterInit
		}
		sinks = append(sinks, store)
	}

	if cfg.HTTPAddr != "" {
		latest := sink.NewLatestSink()
		sinks = append(sinks, latest)

		router := gin.Default()
		api.CreateRestAPI(router, latest, store)
		go func() {
			if err := router.Run(cfg.HTTPAddr); err != nil {
				zap.S().Errorw("api server stopped", "error", err)
			}
		}()
	}

	zap.S().Infow("consumer starting",
		"variant", red.Variant(),
		"source", cfg.SourceKind,
		"topic", cfg.Topic,
		"group_id", cfg.GroupID)

	if err := runner.Run(ctx, src, red, sinks...); err != nil {
		if errors.Is(err, reduce.ErrSourceUnavailable) {
			zap.S().Errorw("source unavailable", "error", err)
			return exitSourceMissing
		}
		zap.S().Errorw("consumer failed", "error", err)
		return exitAdapterInit
	}

	zap.S().Info("consumer closed")
	return exitOK
}
