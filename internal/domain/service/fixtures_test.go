package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
)

func edge(country, sector string, coefficient float64) models.RawSupplyEdge {
	return models.RawSupplyEdge{Country: country, Sector: sector, Coefficient: coefficient}
}

// newGraphRepo builds a small closed supply graph. DDD has no row of its own
// and resolves through the default row.
func newGraphRepo(t *testing.T) *reference.StaticRepository {
	t.Helper()
	repo, err := reference.NewStaticRepository(&reference.Tables{
		Countries: []models.Country{
			{Code: "AAA", Name: "Alpha"},
			{Code: "BBB", Name: "Beta"},
			{Code: "CCC", Name: "Gamma"},
			{Code: "DDD", Name: "Delta"},
		},
		Sectors: []models.Sector{
			{Code: "S1", Name: "Sector One"},
			{Code: "S2", Name: "Sector Two"},
		},
		RiskScores: map[string]models.RiskVector{
			"AAA": models.UniformRiskVector(3),
			"BBB": models.UniformRiskVector(2),
			"CCC": models.UniformRiskVector(4),
		},
		ExpectedLoss: map[string]models.ExpectedLoss{},
		Coefficients: reference.CoefficientTable{
			Default: []models.RawSupplyEdge{edge("AAA", "S1", 0.25)},
			Countries: map[string][]reference.SupplyRow{
				"AAA": {
					{Sector: "S1", Suppliers: []models.RawSupplyEdge{edge("BBB", "S1", 0.4), edge("CCC", "S1", 0.3), edge("AAA", "S2", 0.2)}},
					{Sector: "S2", Suppliers: []models.RawSupplyEdge{edge("CCC", "S1", 0.7)}},
				},
				"BBB": {
					{Sector: "S1", Suppliers: []models.RawSupplyEdge{edge("CCC", "S1", 0.5), edge("DDD", "S1", 0.1)}},
				},
				"CCC": {
					{Sector: "S1", Suppliers: []models.RawSupplyEdge{edge("CCC", "S1", 0.6), edge("BBB", "S1", 0.2)}},
				},
			},
		},
	})
	require.NoError(t, err)
	return repo
}
