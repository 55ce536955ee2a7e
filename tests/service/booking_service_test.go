package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/service"
	"github.com/skyfarehq/skyfare/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testTopic = "booking-events"

func TestBookFlight(t *testing.T) {
	userID := uuid.New()
	flightID := uuid.New()

	t.Run("successful booking publishes event", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		created := &models.Booking{
			ID:          uuid.New(),
			UserID:      userID,
			FlightID:    flightID,
			SeatsBooked: 2,
			CreatedAt:   time.Now().UTC(),
		}
		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				b := args.Get(1).(*models.Booking)
				assert.Equal(t, userID, b.UserID)
				assert.Equal(t, flightID, b.FlightID)
				assert.Equal(t, 2, b.SeatsBooked)
			}).
			Return(created, nil)
		mockProducer.On("Publish", ctx, testTopic, created.ID.String(), mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(3).(kafka.BookingEvent)
				assert.Equal(t, kafka.EventBookingCreated, event.Type)
				assert.Equal(t, created.ID, event.BookingID)
				assert.Equal(t, 2, event.SeatsBooked)
			}).
			Return(nil)

		booking, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID, SeatsBooked: 2})

		assert.NoError(t, err)
		assert.Equal(t, created, booking)
		mockBookings.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("zero seats defaults to one", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				assert.Equal(t, 1, args.Get(1).(*models.Booking).SeatsBooked)
			}).
			Return(&models.Booking{ID: uuid.New(), SeatsBooked: 1}, nil)

		_, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID})

		assert.NoError(t, err)
		mockBookings.AssertExpectations(t)
	})

	t.Run("insufficient seats", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("CreateBooking", ctx, mock.Anything).Return(nil, models.ErrInsufficientSeats)

		booking, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID, SeatsBooked: 5})

		assert.ErrorIs(t, err, models.ErrInsufficientSeats)
		assert.Nil(t, booking)
		mockBookings.AssertExpectations(t)
	})

	t.Run("duplicate booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("CreateBooking", ctx, mock.Anything).Return(nil, models.ErrDuplicateBooking)

		_, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID, SeatsBooked: 1})

		assert.ErrorIs(t, err, models.ErrDuplicateBooking)
	})

	t.Run("missing flight", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("CreateBooking", ctx, mock.Anything).Return(nil, models.ErrFlightNotFound)

		_, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID, SeatsBooked: 1})

		assert.ErrorIs(t, err, models.ErrFlightNotFound)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		created := &models.Booking{ID: uuid.New(), UserID: userID, FlightID: flightID, SeatsBooked: 1}
		mockBookings.On("CreateBooking", ctx, mock.Anything).Return(created, nil)
		mockProducer.On("Publish", ctx, testTopic, created.ID.String(), mock.Anything).
			Return(errors.New("broker unreachable"))

		booking, err := svc.BookFlight(ctx, userID, &models.BookFlightRequest{FlightID: flightID, SeatsBooked: 1})

		assert.NoError(t, err)
		assert.Equal(t, created, booking)
		mockProducer.AssertExpectations(t)
	})
}

func TestCancelBooking(t *testing.T) {
	bookingID := uuid.New()
	existing := &models.Booking{
		ID:          bookingID,
		UserID:      uuid.New(),
		FlightID:    uuid.New(),
		SeatsBooked: 3,
	}

	t.Run("successful cancellation publishes event", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(existing, nil)
		mockBookings.On("DeleteBookingRestoringSeats", ctx, bookingID).Return(nil)
		mockProducer.On("Publish", ctx, testTopic, bookingID.String(), mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(3).(kafka.BookingEvent)
				assert.Equal(t, kafka.EventBookingCancelled, event.Type)
				assert.Equal(t, 3, event.SeatsBooked)
			}).
			Return(nil)

		err := svc.CancelBooking(ctx, bookingID)

		assert.NoError(t, err)
		mockBookings.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("unknown booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(nil, models.ErrBookingNotFound)

		err := svc.CancelBooking(ctx, bookingID)

		assert.ErrorIs(t, err, models.ErrBookingNotFound)
		mockBookings.AssertNotCalled(t, "DeleteBookingRestoringSeats", mock.Anything, mock.Anything)
	})

	t.Run("delete failure propagates", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(existing, nil)
		mockBookings.On("DeleteBookingRestoringSeats", ctx, bookingID).Return(assert.AnError)

		err := svc.CancelBooking(ctx, bookingID)

		assert.Error(t, err)
	})
}

func TestDeleteFlight(t *testing.T) {
	flightID := uuid.New()

	t.Run("cascade delete publishes event", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		mockFlights.On("DeleteFlight", ctx, flightID).Return(nil)
		mockProducer.On("Publish", ctx, testTopic, flightID.String(), mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(3).(kafka.BookingEvent)
				assert.Equal(t, kafka.EventFlightDeleted, event.Type)
				assert.Equal(t, flightID, event.FlightID)
			}).
			Return(nil)

		err := svc.DeleteFlight(ctx, flightID)

		assert.NoError(t, err)
		mockFlights.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("unknown flight", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockFlights.On("DeleteFlight", ctx, flightID).Return(models.ErrFlightNotFound)

		err := svc.DeleteFlight(ctx, flightID)

		assert.ErrorIs(t, err, models.ErrFlightNotFound)
	})
}

func TestCleanupOrphanedBookings(t *testing.T) {
	t.Run("reports removed count and publishes", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		mockBookings.On("DeleteOrphanedBookings", ctx).Return(4, nil)
		mockProducer.On("Publish", ctx, testTopic, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(3).(kafka.BookingEvent)
				assert.Equal(t, kafka.EventOrphansRemoved, event.Type)
				assert.Equal(t, 4, event.Removed)
			}).
			Return(nil)

		removed, err := svc.CleanupOrphanedBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 4, removed)
		mockBookings.AssertExpectations(t)
		mockProducer.AssertExpectations(t)
	})

	t.Run("nothing removed publishes nothing", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		mockProducer := new(mocks.MockEventProducer)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop(),
			service.WithEventProducer(mockProducer, testTopic))
		ctx := context.Background()

		mockBookings.On("DeleteOrphanedBookings", ctx).Return(0, nil)

		removed, err := svc.CleanupOrphanedBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, removed)
		mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockFlights := new(mocks.MockFlightRepository)
		svc := service.NewBookingService(mockBookings, mockFlights, zap.NewNop())
		ctx := context.Background()

		mockBookings.On("DeleteOrphanedBookings", ctx).Return(0, assert.AnError)

		removed, err := svc.CleanupOrphanedBookings(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "orphan cleanup")
		assert.Equal(t, 0, removed)
	})
}
