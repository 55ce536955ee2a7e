package mocks

import (
	"context"

	models "github.com/skyfarehq/skyfare/internal"
	"github.com/stretchr/testify/mock"
)

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlightsPage(ctx context.Context, req models.PageRequest) (*models.FlightsPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightsPage), args.Error(1)
}

func (m *MockFlightCache) SetFlightsPage(ctx context.Context, req models.PageRequest, page *models.FlightsPage) error {
	args := m.Called(ctx, req, page)
	return args.Error(0)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}
