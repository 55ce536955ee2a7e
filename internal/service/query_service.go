package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/ports"
)

const (
	DefaultAdminPageSize  = 10
	DefaultPublicPageSize = 5

	recommendationSize = 5
	popularPoolSize    = 10
)

type queryService struct {
	bookings ports.BookingRepository
	flights  ports.FlightRepository
	cache    ports.FlightCache
	log      *zap.Logger
}

func NewQueryService(bookings ports.BookingRepository, flights ports.FlightRepository, cache ports.FlightCache, log *zap.Logger) *queryService {
	return &queryService{
		bookings: bookings,
		flights:  flights,
		cache:    cache,
		log:      log,
	}
}

func (s *queryService) ListBookings(ctx context.Context, req models.PageRequest) (*models.BookingsPage, error) {
	req = normalizePage(req, DefaultAdminPageSize)

	items, total, err := s.bookings.ListBookingDetails(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	if items == nil {
		items = []models.BookingDetail{}
	}

	return &models.BookingsPage{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		TotalPages: totalPages(total, req.Limit),
	}, nil
}

func (s *queryService) ListFlights(ctx context.Context, req models.PageRequest, public bool) (*models.FlightsPage, error) {
	defaultLimit := DefaultAdminPageSize
	if public {
		defaultLimit = DefaultPublicPageSize
	}
	req = normalizePage(req, defaultLimit)

	// Only unfiltered public pages are cached; searches and the admin view
	// always hit the store.
	cacheable := public && req.Search == "" && s.cache != nil
	if cacheable {
		page, err := s.cache.GetFlightsPage(ctx, req)
		if err != nil {
			s.log.Warn("flight cache read failed", zap.Error(err))
		} else if page != nil {
			return page, nil
		}
	}

	items, total, err := s.flights.ListFlights(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error fetching flights: %w", err)
	}
	if items == nil {
		items = []models.Flight{}
	}

	page := &models.FlightsPage{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		TotalPages: totalPages(total, req.Limit),
	}

	if cacheable {
		if err := s.cache.SetFlightsPage(ctx, req, page); err != nil {
			s.log.Warn("flight cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

// RecommendFlights never includes flights the user already booked. The
// popular strategy takes up to ten flights ranked by booking count and
// backfills with the cheapest remaining ones when fewer than five are left.
func (s *queryService) RecommendFlights(ctx context.Context, userID uuid.UUID, strategy models.RecommendStrategy) ([]models.Flight, error) {
	switch strategy {
	case models.StrategyCheapest:
		return s.flights.CheapestFlights(ctx, userID, nil, recommendationSize)
	case models.StrategyMostSeats:
		return s.flights.FlightsByMostSeats(ctx, userID, recommendationSize)
	}

	top, err := s.flights.TopBookedFlights(ctx, userID, popularPoolSize)
	if err != nil {
		return nil, err
	}
	if len(top) >= recommendationSize {
		return top, nil
	}

	exclude := make([]uuid.UUID, 0, len(top))
	for _, f := range top {
		exclude = append(exclude, f.ID)
	}
	extra, err := s.flights.CheapestFlights(ctx, userID, exclude, recommendationSize-len(top))
	if err != nil {
		return nil, err
	}
	return append(top, extra...), nil
}

func normalizePage(req models.PageRequest, defaultLimit int) models.PageRequest {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	return req
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
