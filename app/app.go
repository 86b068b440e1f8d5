package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/config"
	"github.com/ShahriarRefat0/Book2Door-server/internal/handler"
	"github.com/ShahriarRefat0/Book2Door-server/internal/payment"
	"github.com/ShahriarRefat0/Book2Door-server/internal/repository"
	"github.com/ShahriarRefat0/Book2Door-server/internal/server"
	bookSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/book"
	checkoutSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/checkout"
	orderSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/order"
	statsSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/stats"
	"github.com/ShahriarRefat0/Book2Door-server/migrations"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/logger"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/postgres"
)

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "book2door")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}

	gw := payment.NewClient(cfg.Payment, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer %v", err)
	}

	h := handler.New(handler.Deps{
		CheckoutSvc: checkoutSvc.NewService(repo, gw, log),
		OrderSvc:    orderSvc.NewService(repo, log),
		StatsSvc:    statsSvc.NewService(repo, log),
		BookSvc:     bookSvc.NewService(repo, log),
		Roles:       repo,
		Producer:    producer,
		JWTKey:      []byte(cfg.Auth.Key),
		Kafka:       cfg.Kafka,
	}, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
