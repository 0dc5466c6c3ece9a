package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/internal/config"
	"github.com/wkarto/buzzline-04-karto/internal/gen"
	"github.com/wkarto/buzzline-04-karto/pkg/events"
	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

const (
	exitOK          = 0
	exitConfig      = 1
	exitAdapterInit = 3
)

type generator interface {
	Next() events.BuzzMessage
}

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

	var g generator
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if reduce.Variant(cfg.Variant) == reduce.TemperatureStall {
		g = gen.NewSmokerGenerator(rng)
	} else {
		g = gen.NewBuzzGenerator(rng)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
		zap.S().Errorw("cannot create data folder", "error", err)
		return exitAdapterInit
	}
	file, err := os.OpenFile(cfg.DataFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		zap.S().Errorw("cannot open data file", "path", cfg.DataFile, "error", err)
		return exitAdapterInit
	}
	defer file.Close()

	var writer *kafka.Writer
	if cfg.SourceKind == "kafka" {
		writer = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		zap.S().Infow("producing to topic", "topic", cfg.Topic, "brokers", cfg.Brokers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zap.S().Infow("producer starting",
		"data_file", cfg.DataFile,
		"interval", cfg.Interval)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.S().Info("producer closed")
			return exitOK
		case <-ticker.C:
			emit(ctx, g.Next(), file, writer)
		}
	}
}

func emit(ctx context.Context, msg events.BuzzMessage, file *os.File, writer *kafka.Writer) {
	payload, err := json.Marshal(msg)
	if err != nil {
		zap.S().Errorw("cannot marshal message", "error", err)
		return
	}

	if _, err := file.Write(append(payload, '\n')); err != nil {
		zap.S().Errorw("cannot append to data file", "error", err)
	}

	if writer != nil {
		err := writer.WriteMessages(ctx, kafka.Message{Value: payload})
		if err != nil && ctx.Err() == nil {
			zap.S().Errorw("cannot publish to topic", "error", err)
		}
	}

	zap.S().Debugw("produced message", "payload", string(payload))
}
