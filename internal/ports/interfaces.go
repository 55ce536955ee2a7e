package ports

import (
	"context"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/google/uuid"
)

type FlightRepository interface {
	CreateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error)
	GetFlightByID(ctx context.Context, id uuid.UUID) (*models.Flight, error)
	UpdateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error)
	// DeleteFlight removes the flight and every booking referencing it in a
	// single transaction, bookings first.
	DeleteFlight(ctx context.Context, id uuid.UUID) error
	ListFlights(ctx context.Context, req models.PageRequest) ([]models.Flight, int, error)
	TopBookedFlights(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error)
	CheapestFlights(ctx context.Context, excludeUserID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]models.Flight, error)
	FlightsByMostSeats(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error)
}

type BookingRepository interface {
	// CreateBooking atomically decrements the flight's seat counter and
	// inserts the booking. It returns models.ErrInsufficientSeats when the
	// flight has fewer seats than requested, models.ErrFlightNotFound when
	// the flight is absent and models.ErrDuplicateBooking when the (user,
	// flight) pair is already booked.
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// DeleteBookingRestoringSeats deletes the booking and returns its seats
	// to the flight. Restoration is skipped when the flight no longer
	// exists; the delete still succeeds.
	DeleteBookingRestoringSeats(ctx context.Context, id uuid.UUID) error
	// DeleteOrphanedBookings removes bookings whose flight reference no
	// longer resolves and reports how many were removed.
	DeleteOrphanedBookings(ctx context.Context) (int, error)
	ListBookingDetails(ctx context.Context, req models.PageRequest) ([]models.BookingDetail, int, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type BookingService interface {
	BookFlight(ctx context.Context, userID uuid.UUID, req *models.BookFlightRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
	DeleteFlight(ctx context.Context, flightID uuid.UUID) error
	CleanupOrphanedBookings(ctx context.Context) (int, error)
}

type QueryService interface {
	ListBookings(ctx context.Context, req models.PageRequest) (*models.BookingsPage, error)
	ListFlights(ctx context.Context, req models.PageRequest, public bool) (*models.FlightsPage, error)
	RecommendFlights(ctx context.Context, userID uuid.UUID, strategy models.RecommendStrategy) ([]models.Flight, error)
}

type FlightService interface {
	CreateFlight(ctx context.Context, req *models.FlightRequest) (*models.Flight, error)
	GetFlight(ctx context.Context, id uuid.UUID) (*models.Flight, error)
	UpdateFlight(ctx context.Context, id uuid.UUID, req *models.FlightRequest) (*models.Flight, error)
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, role models.Role) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Verify(ctx context.Context, token string) (*models.Principal, error)
}

// FlightCache is a read-through cache for public flight pages. A nil cache
// disables caching.
type FlightCache interface {
	GetFlightsPage(ctx context.Context, req models.PageRequest) (*models.FlightsPage, error)
	SetFlightsPage(ctx context.Context, req models.PageRequest, page *models.FlightsPage) error
}

// EventProducer publishes booking lifecycle events. Publishing is
// best-effort: callers log failures and carry on.
type EventProducer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}
