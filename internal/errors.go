package models

import "errors"

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrInsufficientSeats is returned when a booking requests more seats
	// than the flight currently has available.
	ErrInsufficientSeats = errors.New("not enough available seats")

	// ErrDuplicateBooking is returned when a user already holds a booking
	// for the flight. Enforced by the unique (user_id, flight_id) index.
	ErrDuplicateBooking = errors.New("flight already booked by this user")

	ErrDuplicateFlightNumber = errors.New("flight number already exists")
	ErrDuplicateEmail        = errors.New("email already registered")

	ErrInvalidUUID        = errors.New("invalid uuid")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
