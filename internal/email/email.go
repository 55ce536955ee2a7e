package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/skyfarehq/skyfare/internal/kafka"
)

// Sender turns booking events into user notifications. The current
// implementation only logs; a real mail transport plugs in behind the same
// method.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification",
		zap.String("type", event.Type),
		zap.String("user_id", event.UserID.String()),
		zap.String("flight_id", event.FlightID.String()))
	return nil
}
