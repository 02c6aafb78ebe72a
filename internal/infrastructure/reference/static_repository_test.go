package reference_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
)

func TestEmbeddedTables_Load(t *testing.T) {
	repo, err := reference.NewEmbeddedRepository()
	require.NoError(t, err)

	assert.NotEmpty(t, repo.Countries())
	assert.NotEmpty(t, repo.Sectors())
	assert.True(t, repo.IsValidCountry("USA"))
	assert.True(t, repo.IsValidSector("C10-C12"))
	assert.True(t, repo.IsValidSector("B06"))
	assert.False(t, repo.IsValidCountry("XXX"))

	assert.Equal(t, "United States", repo.CountryName("USA"))
	assert.Equal(t, models.RiskVector{Climate: 2.8, ModernSlavery: 2.1, Political: 2.3, WaterStress: 2.9, NatureLoss: 2.7}, repo.RiskScores("USA"))
	assert.NotNil(t, repo.StaticExpectedLoss("USA"))
}

func TestEmbeddedTables_EverySupplierResolves(t *testing.T) {
	repo, err := reference.NewEmbeddedRepository()
	require.NoError(t, err)

	for _, c := range repo.Countries() {
		for _, s := range repo.Sectors() {
			edges := repo.SupplyEdges(c.Code, s.Code)
			require.NotEmpty(t, edges, "%s/%s", c.Code, s.Code)
			for _, e := range edges {
				assert.True(t, repo.IsValidCountry(e.Country), e.Country)
				assert.True(t, repo.IsValidSector(e.Sector), e.Sector)
			}
		}
	}
}

func newFixtureRepo(t *testing.T) *reference.StaticRepository {
	t.Helper()
	repo, err := reference.NewStaticRepository(&reference.Tables{
		Countries: []models.Country{{Code: "AAA", Name: "Alpha"}, {Code: "BBB", Name: "Beta"}, {Code: "CCC", Name: "Gamma"}},
		Sectors:   []models.Sector{{Code: "S1", Name: "Sector One"}, {Code: "S2", Name: "Sector Two"}},
		RiskScores: map[string]models.RiskVector{
			"AAA": models.UniformRiskVector(1),
		},
		ExpectedLoss: map[string]models.ExpectedLoss{
			"AAA": {TotalAnnualLoss: 100},
		},
		Coefficients: reference.CoefficientTable{
			Default: []models.RawSupplyEdge{{Country: "CCC", Sector: "S1", Coefficient: 0.5}},
			Countries: map[string][]reference.SupplyRow{
				"AAA": {
					{Sector: "S2", Suppliers: []models.RawSupplyEdge{{Country: "BBB", Sector: "S2", Coefficient: 0.3}}},
					{Sector: "S1", Suppliers: []models.RawSupplyEdge{{Country: "BBB", Sector: "S1", Coefficient: 0.2}}},
				},
			},
		},
	})
	require.NoError(t, err)
	return repo
}

func TestSupplyEdges_FallbackChain(t *testing.T) {
	repo := newFixtureRepo(t)

	exact := repo.SupplyEdges("AAA", "S1")
	require.Len(t, exact, 1)
	assert.Equal(t, "S1", exact[0].Sector)

	firstSector := repo.SupplyEdges("AAA", "S9")
	require.Len(t, firstSector, 1)
	assert.Equal(t, "S2", firstSector[0].Sector)

	def := repo.SupplyEdges("ZZZ", "S1")
	require.Len(t, def, 1)
	assert.Equal(t, "CCC", def[0].Country)
}

func TestLookups_Defaults(t *testing.T) {
	repo := newFixtureRepo(t)

	assert.Equal(t, "ZZZ", repo.CountryName("ZZZ"))
	assert.Equal(t, "S9", repo.SectorName("S9"))
	assert.Equal(t, models.UniformRiskVector(2.5), repo.RiskScores("BBB"))
	assert.Nil(t, repo.StaticExpectedLoss("BBB"))

	loss := repo.StaticExpectedLoss("AAA")
	require.NotNil(t, loss)
	loss.TotalAnnualLoss = 999
	assert.Equal(t, 100.0, repo.StaticExpectedLoss("AAA").TotalAnnualLoss)
}

func TestValidate_RejectsEmptyDefault(t *testing.T) {
	_, err := reference.NewStaticRepository(&reference.Tables{
		Countries: []models.Country{{Code: "AAA"}},
		Sectors:   []models.Sector{{Code: "S1"}},
	})
	assert.Error(t, err)
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := reference.LoadFS(fstest.MapFS{
		"countries.json": {Data: []byte(`[]`)},
	})
	assert.Error(t, err)
}
