package repository

import (
	"github.com/turtacn/supplyrisk/internal/domain/models"
)

//go:generate mockery --name ReferenceRepository --output ../repository/mocks --filename reference_repository.go
// ReferenceRepository exposes the static lookup tables the engine reads from.
// Implementations are read-only after construction and safe for concurrent use.
// ReferenceRepository 提供引擎读取的静态查找表。
type ReferenceRepository interface {
	// Countries returns every assessable country in table order.
	Countries() []models.Country

	// Sectors returns every assessable sector in table order.
	Sectors() []models.Sector

	// Country looks up a single country by ISO-3 code.
	Country(code string) (models.Country, bool)

	// Sector looks up a single sector by code.
	Sector(code string) (models.Sector, bool)

	// CountryName returns the display name for a country, or the code itself when unknown.
	CountryName(code string) string

	// SectorName returns the display name for a sector, or the code itself when unknown.
	SectorName(code string) string

	// RiskScores returns the intrinsic risk vector of a country.
	// Countries without scores get the default score on every dimension.
	RiskScores(code string) models.RiskVector

	// StaticExpectedLoss returns the snapshot loss for a country, or nil.
	// The returned value is a copy and may be modified by the caller.
	StaticExpectedLoss(code string) *models.ExpectedLoss

	// SupplyEdges returns the ordered IO-table row for (country, sector),
	// applying the exact -> first sector of country -> default fallback chain.
	SupplyEdges(country, sector string) []models.RawSupplyEdge

	// IsValidCountry reports whether code is a known country.
	IsValidCountry(code string) bool

	// IsValidSector reports whether code is a known sector.
	IsValidSector(code string) bool
}
