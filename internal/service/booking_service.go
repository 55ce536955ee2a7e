package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/ports"
)

type bookingService struct {
	bookings ports.BookingRepository
	flights  ports.FlightRepository
	producer ports.EventProducer
	topic    string
	log      *zap.Logger
}

type BookingServiceOption func(*bookingService)

// WithEventProducer enables best-effort event publishing on the given topic.
func WithEventProducer(producer ports.EventProducer, topic string) BookingServiceOption {
	return func(s *bookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(bookings ports.BookingRepository, flights ports.FlightRepository, log *zap.Logger, opts ...BookingServiceOption) *bookingService {
	s := &bookingService{
		bookings: bookings,
		flights:  flights,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookFlight creates a booking for the user. The repository performs the
// capacity check, the seat decrement and the duplicate check as one
// transactional unit, so concurrent bookers cannot drive a flight's seat
// counter negative or double-book a (user, flight) pair.
func (s *bookingService) BookFlight(ctx context.Context, userID uuid.UUID, req *models.BookFlightRequest) (*models.Booking, error) {
	seats := req.SeatsBooked
	if seats == 0 {
		seats = 1
	}

	booking := &models.Booking{
		UserID:      userID,
		FlightID:    req.FlightID,
		SeatsBooked: seats,
	}

	created, err := s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", created.ID.String()),
		zap.String("flight_id", created.FlightID.String()),
		zap.Int("seats", created.SeatsBooked))
	s.publish(ctx, kafka.BookingEvent{
		Type:        kafka.EventBookingCreated,
		BookingID:   created.ID,
		UserID:      created.UserID,
		FlightID:    created.FlightID,
		SeatsBooked: created.SeatsBooked,
		OccurredAt:  time.Now().UTC(),
	})
	return created, nil
}

// CancelBooking deletes the booking and returns its seats to the flight.
// Seat restoration is best-effort: a booking whose flight was separately
// removed is still cancellable.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookings.DeleteBookingRestoringSeats(ctx, bookingID); err != nil {
		return err
	}

	s.log.Info("booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("flight_id", booking.FlightID.String()))
	s.publish(ctx, kafka.BookingEvent{
		Type:        kafka.EventBookingCancelled,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		FlightID:    booking.FlightID,
		SeatsBooked: booking.SeatsBooked,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

// DeleteFlight removes the flight and all bookings referencing it. The
// cascade runs bookings-first inside one transaction in the repository.
func (s *bookingService) DeleteFlight(ctx context.Context, flightID uuid.UUID) error {
	if err := s.flights.DeleteFlight(ctx, flightID); err != nil {
		return err
	}

	s.log.Info("flight deleted with bookings cascade", zap.String("flight_id", flightID.String()))
	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventFlightDeleted,
		FlightID:   flightID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// CleanupOrphanedBookings removes bookings whose flight is gone and reports
// the count. Running it twice in a row removes nothing the second time.
func (s *bookingService) CleanupOrphanedBookings(ctx context.Context) (int, error) {
	removed, err := s.bookings.DeleteOrphanedBookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("orphan cleanup: %w", err)
	}
	if removed > 0 {
		s.log.Info("orphaned bookings removed", zap.Int("count", removed))
		s.publish(ctx, kafka.BookingEvent{
			Type:       kafka.EventOrphansRemoved,
			Removed:    removed,
			OccurredAt: time.Now().UTC(),
		})
	}
	return removed, nil
}

func (s *bookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	key := event.BookingID.String()
	if event.BookingID == uuid.Nil {
		key = event.FlightID.String()
	}
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("type", event.Type), zap.Error(err))
	}
}
