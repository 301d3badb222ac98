package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/transportdapp/transport-ledger-backend/internal/bank"
	"github.com/transportdapp/transport-ledger-backend/internal/contract"
	"github.com/transportdapp/transport-ledger-backend/internal/events"
	"github.com/transportdapp/transport-ledger-backend/internal/indexer"
	"github.com/transportdapp/transport-ledger-backend/internal/metrics"
	"github.com/transportdapp/transport-ledger-backend/internal/model"
	"github.com/transportdapp/transport-ledger-backend/internal/repository/clickhouse"
	"github.com/transportdapp/transport-ledger-backend/internal/transport"
)

type config struct {
	Addr            string `long:"addr" env:"LEDGER_ADDR" default:":8080" description:"HTTP listen address"`
	ClickhouseDSN   string `long:"clickhouse-dsn" env:"LEDGER_CLICKHOUSE_DSN" description:"ClickHouse DSN for the archive; indexer is disabled when empty"`
	OwnerAddress    string `long:"owner-address" env:"LEDGER_OWNER_ADDRESS" default:"0xowner" description:"contract owner address"`
	ContractAccount string `long:"contract-account" env:"LEDGER_CONTRACT_ACCOUNT" default:"0xcontract" description:"escrow pool account address"`
	EventBuffer     int    `long:"event-buffer" env:"LEDGER_EVENT_BUFFER" default:"1024" description:"event bus buffer size"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ledger server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ledgerBank := bank.NewLedger()

	bus := events.NewBus(cfg.EventBuffer, logger.Named("bus"))
	defer bus.Close()

	ledger, err := contract.New(
		model.Address(cfg.OwnerAddress),
		model.Address(cfg.ContractAccount),
		ledgerBank,
		bus,
		metrics.NewContract(),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init contract: %w", err)
	}

	indexerDone := make(chan error, 1)
	indexerStarted := false
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init clickhouse repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()

		svc, err := indexer.New(ledger, repo, bus.Subscribe(), metrics.NewIndexer(), logger.Named("indexer"))
		if err != nil {
			return fmt.Errorf("init indexer: %w", err)
		}

		indexerStarted = true
		go func() {
			indexerDone <- svc.Run(ctx)
		}()
	} else {
		logger.Warn("clickhouse dsn not set, archive indexer disabled")
	}

	handler := transport.NewHandler(ledger, ledgerBank, logger.Named("http"))

	mux := http.NewServeMux()
	mux.Handle("/", handler.SetupRouter())
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	if indexerStarted {
		if err := <-indexerDone; err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("indexer: %w", err)
		}
	}
	return nil
}
