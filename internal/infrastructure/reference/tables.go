// Package reference holds the static lookup tables: countries, sectors, risk
// scores, static expected-loss snapshots and the IO-coefficient supply graph.
package reference

import (
	"fmt"

	"github.com/turtacn/supplyrisk/internal/domain/models"
)

// SupplyRow is one (country, sector) row of the IO-coefficient table.
type SupplyRow struct {
	Sector    string                 `json:"sector"`
	Suppliers []models.RawSupplyEdge `json:"suppliers"`
}

// CoefficientTable is the on-disk shape of the IO table. Rows keep their
// order so "first listed sector" is well defined.
type CoefficientTable struct {
	Default   []models.RawSupplyEdge `json:"default"`
	Countries map[string][]SupplyRow `json:"countries"`
}

// Tables is the full in-memory reference snapshot.
type Tables struct {
	Countries    []models.Country
	Sectors      []models.Sector
	RiskScores   map[string]models.RiskVector
	ExpectedLoss map[string]models.ExpectedLoss
	Coefficients CoefficientTable
}

// Validate checks the structural guarantees the expander relies on.
func (t *Tables) Validate() error {
	if len(t.Countries) == 0 {
		return fmt.Errorf("reference tables contain no countries")
	}
	if len(t.Sectors) == 0 {
		return fmt.Errorf("reference tables contain no sectors")
	}
	if len(t.Coefficients.Default) == 0 {
		return fmt.Errorf("reference tables have an empty default supply row")
	}
	for country, rows := range t.Coefficients.Countries {
		for _, row := range rows {
			for _, edge := range row.Suppliers {
				if edge.Coefficient < 0 || edge.Coefficient > 1 {
					return fmt.Errorf("coefficient %v for %s/%s -> %s/%s is outside [0,1]",
						edge.Coefficient, country, row.Sector, edge.Country, edge.Sector)
				}
			}
		}
	}
	return nil
}
