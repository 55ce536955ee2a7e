package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/ports"
)

type flightService struct {
	flights ports.FlightRepository
	log     *zap.Logger
}

func NewFlightService(flights ports.FlightRepository, log *zap.Logger) *flightService {
	return &flightService{flights: flights, log: log}
}

func (s *flightService) CreateFlight(ctx context.Context, req *models.FlightRequest) (*models.Flight, error) {
	flight := flightFromRequest(uuid.Nil, req)
	created, err := s.flights.CreateFlight(ctx, flight)
	if err != nil {
		return nil, err
	}
	s.log.Info("flight created",
		zap.String("flight_id", created.ID.String()),
		zap.String("flight_number", created.FlightNumber))
	return created, nil
}

func (s *flightService) GetFlight(ctx context.Context, id uuid.UUID) (*models.Flight, error) {
	return s.flights.GetFlightByID(ctx, id)
}

func (s *flightService) UpdateFlight(ctx context.Context, id uuid.UUID, req *models.FlightRequest) (*models.Flight, error) {
	updated, err := s.flights.UpdateFlight(ctx, flightFromRequest(id, req))
	if err != nil {
		return nil, err
	}
	s.log.Info("flight updated", zap.String("flight_id", id.String()))
	return updated, nil
}

func flightFromRequest(id uuid.UUID, req *models.FlightRequest) *models.Flight {
	return &models.Flight{
		ID:             id,
		FlightNumber:   req.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
	}
}
