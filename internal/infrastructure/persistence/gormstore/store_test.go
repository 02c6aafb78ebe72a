package gormstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/persistence/gormstore"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

func newStore(t *testing.T) *gormstore.Store {
	t.Helper()
	db, err := gormstore.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := gormstore.NewStore(db, logger.NewNoopLogger())
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestStore_SeedAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	embedded, err := reference.LoadEmbedded()
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, embedded))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, embedded.Countries, loaded.Countries)
	assert.Equal(t, embedded.Sectors, loaded.Sectors)
	assert.Equal(t, embedded.RiskScores, loaded.RiskScores)
	assert.Equal(t, embedded.ExpectedLoss, loaded.ExpectedLoss)
	assert.Equal(t, embedded.Coefficients.Default, loaded.Coefficients.Default)
	assert.Equal(t, embedded.Coefficients.Countries, loaded.Coefficients.Countries)
}

func TestStore_RepositoryKeepsFallbackOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	embedded, err := reference.LoadEmbedded()
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, embedded))

	repo, err := store.NewRepository(ctx)
	require.NoError(t, err)

	// Unknown sector falls back to the first listed sector of the country.
	first := embedded.Coefficients.Countries["USA"][0].Suppliers
	assert.Equal(t, first, repo.SupplyEdges("USA", "Z99"))
	assert.Equal(t, embedded.Coefficients.Default, repo.SupplyEdges("ARG", "A01"))
	assert.Equal(t, "United States", repo.CountryName("USA"))
}

func TestStore_KeepsRowPositions(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	tables, err := reference.LoadEmbedded()
	require.NoError(t, err)

	first := []models.RawSupplyEdge{{Country: "CHN", Sector: "C26", Coefficient: 0.2}}
	second := []models.RawSupplyEdge{{Country: "DEU", Sector: "C29", Coefficient: 0.1}}
	tables.Coefficients.Countries["MEX"] = []reference.SupplyRow{
		{Sector: "A01", Suppliers: []models.RawSupplyEdge{}},
		{Sector: "C26", Suppliers: first},
		{Sector: "C26", Suppliers: second},
	}
	require.NoError(t, store.Seed(ctx, tables))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tables.Coefficients.Countries["MEX"], loaded.Coefficients.Countries["MEX"])

	repo, err := reference.NewStaticRepository(loaded)
	require.NoError(t, err)
	// An empty first row sends unknown sectors to the default row.
	assert.Equal(t, tables.Coefficients.Default, repo.SupplyEdges("MEX", "Z99"))
	assert.Equal(t, first, repo.SupplyEdges("MEX", "C26"))
}

func TestStore_SeedReplacesContents(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	embedded, err := reference.LoadEmbedded()
	require.NoError(t, err)

	require.NoError(t, store.Seed(ctx, embedded))
	require.NoError(t, store.Seed(ctx, embedded))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Countries, len(embedded.Countries))
	assert.Len(t, loaded.Coefficients.Default, len(embedded.Coefficients.Default))
}

func TestStore_EmptyDatabaseFailsValidation(t *testing.T) {
	_, err := newStore(t).Load(context.Background())
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := gormstore.Open("mysql", "dsn")
	assert.Error(t, err)
}
