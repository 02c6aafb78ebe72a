package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/supplyrisk/internal/domain/models"
)

// MockClimateRiskProvider is a mock implementation of ClimateRiskProvider
type MockClimateRiskProvider struct {
	mock.Mock
}

func (m *MockClimateRiskProvider) FetchExpectedLoss(ctx context.Context, countryName string) *models.ExpectedLoss {
	args := m.Called(ctx, countryName)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.ExpectedLoss)
}
