package mocks

import (
	"context"

	"github.com/google/uuid"
	models "github.com/skyfarehq/skyfare/internal"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) CreateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetFlightByID(ctx context.Context, id uuid.UUID) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) ListFlights(ctx context.Context, req models.PageRequest) ([]models.Flight, int, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Flight), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) TopBookedFlights(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error) {
	args := m.Called(ctx, excludeUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) CheapestFlights(ctx context.Context, excludeUserID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]models.Flight, error) {
	args := m.Called(ctx, excludeUserID, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) FlightsByMostSeats(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error) {
	args := m.Called(ctx, excludeUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}
