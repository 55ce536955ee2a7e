package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	models "github.com/skyfarehq/skyfare/internal"
	"github.com/stretchr/testify/assert"
)

var mockRoutes = [][2]string{
	{"LHR", "JFK"},
	{"CDG", "NRT"},
	{"AMS", "SIN"},
	{"FRA", "LAX"},
	{"MAD", "GRU"},
}

func CreateMockFlight() *models.Flight {
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &models.Flight{
		ID:             uuid.New(),
		FlightNumber:   "BA142",
		Origin:         "LHR",
		Destination:    "JFK",
		DepartureTime:  base,
		ArrivalTime:    base.Add(8 * time.Hour),
		AvailableSeats: 120,
		Price:          349.99,
	}
}

func CreateMockFlights(count int) []models.Flight {
	flights := make([]models.Flight, count)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		route := mockRoutes[i%len(mockRoutes)]
		flights[i] = models.Flight{
			ID:             uuid.New(),
			FlightNumber:   fmt.Sprintf("BA%d", 100+i),
			Origin:         route[0],
			Destination:    route[1],
			DepartureTime:  base.AddDate(0, 0, i),
			ArrivalTime:    base.AddDate(0, 0, i).Add(8 * time.Hour),
			AvailableSeats: 100 + i,
			Price:          199.99 + float64(i)*50,
		}
	}
	return flights
}

func CreateMockBooking(id uuid.UUID) *models.Booking {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &models.Booking{
		ID:          id,
		UserID:      uuid.New(),
		FlightID:    uuid.New(),
		SeatsBooked: 2,
		CreatedAt:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func CreateMockBookingDetails(count int) []models.BookingDetail {
	details := make([]models.BookingDetail, count)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		route := mockRoutes[i%len(mockRoutes)]
		details[i] = models.BookingDetail{
			ID:            uuid.New(),
			SeatsBooked:   1 + i%3,
			CreatedAt:     base.Add(-time.Duration(i) * time.Hour),
			UserName:      fmt.Sprintf("Passenger %d", i+1),
			UserEmail:     fmt.Sprintf("passenger%d@example.com", i+1),
			FlightNumber:  fmt.Sprintf("BA%d", 100+i),
			Origin:        route[0],
			Destination:   route[1],
			DepartureTime: base.AddDate(0, 0, i),
			ArrivalTime:   base.AddDate(0, 0, i).Add(8 * time.Hour),
		}
	}
	return details
}

func CreateMockUser(role models.Role) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test.user@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
		CreatedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func CreateMockPrincipal(role models.Role) *models.Principal {
	return &models.Principal{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test.user@example.com",
		Role:  role,
	}
}

func FlightsEqual(t *testing.T, expected, actual *models.Flight) {
	t.Helper()

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.FlightNumber, actual.FlightNumber)
	assert.Equal(t, expected.Origin, actual.Origin)
	assert.Equal(t, expected.Destination, actual.Destination)
	assert.Equal(t, expected.AvailableSeats, actual.AvailableSeats)
	assert.Equal(t, expected.Price, actual.Price)
}

func FlightSlicesEqual(t *testing.T, expected, actual []models.Flight) {
	t.Helper()

	assert.Equal(t, len(expected), len(actual))
	for i := range expected {
		FlightsEqual(t, &expected[i], &actual[i])
	}
}
