// Package gormstore loads the reference tables from a relational database.
// The schema mirrors the embedded JSON snapshot one table per file.
// gormstore 从关系型数据库加载参考数据表。
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

// Open connects to the reference database. driver is "sqlite" or "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported reference driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s reference database: %w", driver, err)
	}
	return db, nil
}

// Store reads and writes the reference tables.
type Store struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewStore creates a new Store
func NewStore(db *gorm.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log.WithComponent("ReferenceStore")}
}

// Migrate creates or updates the reference schema.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&countryDBM{}, &sectorDBM{}, &riskScoreDBM{}, &expectedLossDBM{}, &supplyRowDBM{}, &supplyEdgeDBM{},
	)
}

// Seed replaces the contents of every reference table with tables.
func (s *Store) Seed(ctx context.Context, tables *reference.Tables) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&countryDBM{}, &sectorDBM{}, &riskScoreDBM{}, &expectedLossDBM{}, &supplyRowDBM{}, &supplyEdgeDBM{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		countries := make([]countryDBM, 0, len(tables.Countries))
		for i, c := range tables.Countries {
			countries = append(countries, countryDBM{Code: c.Code, Name: c.Name, Region: c.Region, Position: i})
		}
		if err := tx.CreateInBatches(countries, 100).Error; err != nil {
			return err
		}

		sectors := make([]sectorDBM, 0, len(tables.Sectors))
		for i, sec := range tables.Sectors {
			sectors = append(sectors, sectorDBM{Code: sec.Code, Name: sec.Name, Category: sec.Category, Position: i})
		}
		if err := tx.CreateInBatches(sectors, 100).Error; err != nil {
			return err
		}

		for _, code := range utils.SortedKeys(tables.RiskScores) {
			if err := tx.Create(riskScoreFromDomain(code, tables.RiskScores[code])).Error; err != nil {
				return err
			}
		}
		for _, code := range utils.SortedKeys(tables.ExpectedLoss) {
			if err := tx.Create(expectedLossFromDomain(code, tables.ExpectedLoss[code])).Error; err != nil {
				return err
			}
		}

		var rows []supplyRowDBM
		edges := edgeRows(constants.DefaultSupplyKey, 0, "", tables.Coefficients.Default)
		for _, country := range utils.SortedKeys(tables.Coefficients.Countries) {
			for rowPos, row := range tables.Coefficients.Countries[country] {
				rows = append(rows, supplyRowDBM{Country: country, RowPosition: rowPos, Sector: row.Sector})
				edges = append(edges, edgeRows(country, rowPos, row.Sector, row.Suppliers)...)
			}
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 200).Error; err != nil {
				return err
			}
		}
		return tx.CreateInBatches(edges, 200).Error
	})
}

// Load reads every reference table into memory.
func (s *Store) Load(ctx context.Context) (*reference.Tables, error) {
	db := s.db.WithContext(ctx)
	tables := &reference.Tables{
		RiskScores:   map[string]models.RiskVector{},
		ExpectedLoss: map[string]models.ExpectedLoss{},
		Coefficients: reference.CoefficientTable{Countries: map[string][]reference.SupplyRow{}},
	}

	var countries []countryDBM
	if err := db.Order("position").Find(&countries).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("countries", err)
	}
	for i := range countries {
		tables.Countries = append(tables.Countries, countries[i].toDomain())
	}

	var sectors []sectorDBM
	if err := db.Order("position").Find(&sectors).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("sectors", err)
	}
	for i := range sectors {
		tables.Sectors = append(tables.Sectors, sectors[i].toDomain())
	}

	var scores []riskScoreDBM
	if err := db.Find(&scores).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("risk_scores", err)
	}
	for i := range scores {
		tables.RiskScores[scores[i].Country] = scores[i].toDomain()
	}

	var losses []expectedLossDBM
	if err := db.Find(&losses).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("static_expected_loss", err)
	}
	for i := range losses {
		tables.ExpectedLoss[losses[i].Country] = losses[i].toDomain()
	}

	var rows []supplyRowDBM
	if err := db.Order("country, row_position").Find(&rows).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("io_rows", err)
	}
	// rowIndex maps (country, row_position) to the slice index of that row.
	rowIndex := make(map[string]map[int]int)
	for i := range rows {
		r := &rows[i]
		if rowIndex[r.Country] == nil {
			rowIndex[r.Country] = map[int]int{}
		}
		rowIndex[r.Country][r.RowPosition] = len(tables.Coefficients.Countries[r.Country])
		tables.Coefficients.Countries[r.Country] = append(tables.Coefficients.Countries[r.Country],
			reference.SupplyRow{Sector: r.Sector, Suppliers: []models.RawSupplyEdge{}})
	}

	var edges []supplyEdgeDBM
	if err := db.Order("country, row_position, position").Find(&edges).Error; err != nil {
		return nil, apperrors.ErrReferenceLoad("io_coefficients", err)
	}
	for i := range edges {
		e := &edges[i]
		if e.Country == constants.DefaultSupplyKey {
			tables.Coefficients.Default = append(tables.Coefficients.Default, e.toDomain())
			continue
		}
		idx, ok := rowIndex[e.Country][e.RowPosition]
		if !ok {
			return nil, apperrors.ErrReferenceLoad("io_coefficients",
				fmt.Errorf("edge %s/%s row %d has no row header", e.Country, e.Sector, e.RowPosition))
		}
		row := &tables.Coefficients.Countries[e.Country][idx]
		row.Suppliers = append(row.Suppliers, e.toDomain())
	}

	if err := tables.Validate(); err != nil {
		return nil, apperrors.ErrReferenceLoad("database", err)
	}
	s.logger.Info(ctx, "reference tables loaded from database", logger.Fields{
		"countries":    len(tables.Countries),
		"sectors":      len(tables.Sectors),
		"supply_edges": len(edges),
	})
	return tables, nil
}

// NewRepository loads the tables and wraps them in a read-only repository.
func (s *Store) NewRepository(ctx context.Context) (*reference.StaticRepository, error) {
	tables, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return reference.NewStaticRepository(tables)
}

func edgeRows(country string, rowPos int, sector string, suppliers []models.RawSupplyEdge) []supplyEdgeDBM {
	out := make([]supplyEdgeDBM, 0, len(suppliers))
	for i, e := range suppliers {
		out = append(out, supplyEdgeDBM{
			Country:         country,
			Sector:          sector,
			RowPosition:     rowPos,
			SupplierCountry: e.Country,
			SupplierSector:  e.Sector,
			Coefficient:     e.Coefficient,
			Position:        i,
		})
	}
	return out
}
