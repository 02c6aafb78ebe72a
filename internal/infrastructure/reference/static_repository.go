package reference

import (
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	"github.com/turtacn/supplyrisk/pkg/constants"
)

// StaticRepository serves reference lookups from an immutable Tables snapshot.
// StaticRepository 基于不可变的参考表快照提供查询。
type StaticRepository struct {
	tables    *Tables
	countries map[string]models.Country
	sectors   map[string]models.Sector
}

var _ repository.ReferenceRepository = (*StaticRepository)(nil)

// NewStaticRepository indexes the tables after validating them.
func NewStaticRepository(tables *Tables) (*StaticRepository, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	r := &StaticRepository{
		tables:    tables,
		countries: make(map[string]models.Country, len(tables.Countries)),
		sectors:   make(map[string]models.Sector, len(tables.Sectors)),
	}
	for _, c := range tables.Countries {
		r.countries[c.Code] = c
	}
	for _, s := range tables.Sectors {
		r.sectors[s.Code] = s
	}
	return r, nil
}

func (r *StaticRepository) Countries() []models.Country {
	out := make([]models.Country, len(r.tables.Countries))
	copy(out, r.tables.Countries)
	return out
}

func (r *StaticRepository) Sectors() []models.Sector {
	out := make([]models.Sector, len(r.tables.Sectors))
	copy(out, r.tables.Sectors)
	return out
}

func (r *StaticRepository) Country(code string) (models.Country, bool) {
	c, ok := r.countries[code]
	return c, ok
}

func (r *StaticRepository) Sector(code string) (models.Sector, bool) {
	s, ok := r.sectors[code]
	return s, ok
}

func (r *StaticRepository) CountryName(code string) string {
	if c, ok := r.countries[code]; ok {
		return c.Name
	}
	return code
}

func (r *StaticRepository) SectorName(code string) string {
	if s, ok := r.sectors[code]; ok {
		return s.Name
	}
	return code
}

func (r *StaticRepository) RiskScores(code string) models.RiskVector {
	if v, ok := r.tables.RiskScores[code]; ok {
		return v
	}
	return models.UniformRiskVector(constants.DefaultRiskScore)
}

func (r *StaticRepository) StaticExpectedLoss(code string) *models.ExpectedLoss {
	loss, ok := r.tables.ExpectedLoss[code]
	if !ok {
		return nil
	}
	return &loss
}

// SupplyEdges applies the lookup chain: exact row, then the country's first
// listed row, then the default row. Empty rows fall through to the default.
func (r *StaticRepository) SupplyEdges(country, sector string) []models.RawSupplyEdge {
	rows := r.tables.Coefficients.Countries[country]
	for _, row := range rows {
		if row.Sector == sector && len(row.Suppliers) > 0 {
			return row.Suppliers
		}
	}
	if len(rows) > 0 && len(rows[0].Suppliers) > 0 {
		return rows[0].Suppliers
	}
	return r.tables.Coefficients.Default
}

func (r *StaticRepository) IsValidCountry(code string) bool {
	_, ok := r.countries[code]
	return ok
}

func (r *StaticRepository) IsValidSector(code string) bool {
	_, ok := r.sectors[code]
	return ok
}
