package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Flight struct {
	ID             uuid.UUID `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	AvailableSeats int       `json:"available_seats"`
	Price          float64   `json:"price"`
}

type Booking struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FlightID    uuid.UUID `json:"flight_id"`
	SeatsBooked int       `json:"seats_booked"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with its user and flight, as returned
// by the admin booking listing.
type BookingDetail struct {
	ID            uuid.UUID `json:"id"`
	SeatsBooked   int       `json:"seats_booked"`
	CreatedAt     time.Time `json:"created_at"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	FlightNumber  string    `json:"flight_number"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type BookFlightRequest struct {
	FlightID    uuid.UUID `json:"flight_id" validate:"required"`
	SeatsBooked int       `json:"seats_booked" validate:"omitempty,min=1"`
}

type FlightRequest struct {
	FlightNumber   string    `json:"flight_number" validate:"required,flight_number"`
	Origin         string    `json:"origin" validate:"required"`
	Destination    string    `json:"destination" validate:"required"`
	DepartureTime  time.Time `json:"departure_time" validate:"required"`
	ArrivalTime    time.Time `json:"arrival_time" validate:"required,gtefield=DepartureTime"`
	AvailableSeats int       `json:"available_seats" validate:"min=0"`
	Price          float64   `json:"price" validate:"min=0"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Principal is the authenticated caller attached to the request context by
// the auth middleware.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

type BookingsPage struct {
	Items      []BookingDetail `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

type FlightsPage struct {
	Items      []Flight `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
}

type RecommendStrategy string

const (
	StrategyPopular   RecommendStrategy = "popular"
	StrategyCheapest  RecommendStrategy = "cheapest"
	StrategyMostSeats RecommendStrategy = "mostSeats"
)
