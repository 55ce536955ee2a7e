package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/skyfarehq/skyfare/internal/email"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/internal/service"
	"github.com/skyfarehq/skyfare/pkg/config"
	"go.uber.org/zap"

	"time"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingService := service.NewBookingService(
		bookingRepo,
		flightRepo,
		log,
		service.WithEventProducer(producer, cfg.Kafka.BookingsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingsTopic)
	defer consumer.Close()

	sender := email.NewSender(log)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Warn("failed to decode booking event", zap.Error(err))
				return nil
			}
			return sender.Send(ctx, event)
		})
		if err != nil && ctx.Err() == nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	sweepTicker := time.NewTicker(cfg.Worker.OrphanSweepInterval)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	log.Info("worker started", zap.Duration("sweep_interval", cfg.Worker.OrphanSweepInterval))

	for {
		select {
		case <-sweepTicker.C:
			removed, err := bookingService.CleanupOrphanedBookings(ctx)
			if err != nil {
				log.Error("orphan sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("removed orphaned bookings", zap.Int("count", removed))
			}
		case s := <-sig:
			log.Info("shutting down", zap.String("signal", s.String()))
			return
		}
	}
}
