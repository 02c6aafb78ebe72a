package gormstore

import "github.com/turtacn/supplyrisk/internal/domain/models"

// countryDBM is the database model for the countries table.
type countryDBM struct {
	Code     string `gorm:"primaryKey;size:3"`
	Name     string `gorm:"not null"`
	Region   string
	Position int `gorm:"not null;index"`
}

func (countryDBM) TableName() string { return "countries" }

func (dbm *countryDBM) toDomain() models.Country {
	return models.Country{Code: dbm.Code, Name: dbm.Name, Region: dbm.Region}
}

// sectorDBM is the database model for the sectors table.
type sectorDBM struct {
	Code     string `gorm:"primaryKey;size:16"`
	Name     string `gorm:"not null"`
	Category string
	Position int `gorm:"not null;index"`
}

func (sectorDBM) TableName() string { return "sectors" }

func (dbm *sectorDBM) toDomain() models.Sector {
	return models.Sector{Code: dbm.Code, Name: dbm.Name, Category: dbm.Category}
}

// riskScoreDBM is the database model for the risk_scores table.
type riskScoreDBM struct {
	Country       string `gorm:"primaryKey;size:3"`
	Climate       float64
	ModernSlavery float64
	Political     float64
	WaterStress   float64
	NatureLoss    float64
}

func (riskScoreDBM) TableName() string { return "risk_scores" }

func (dbm *riskScoreDBM) toDomain() models.RiskVector {
	return models.RiskVector{
		Climate:       dbm.Climate,
		ModernSlavery: dbm.ModernSlavery,
		Political:     dbm.Political,
		WaterStress:   dbm.WaterStress,
		NatureLoss:    dbm.NatureLoss,
	}
}

func riskScoreFromDomain(country string, v models.RiskVector) *riskScoreDBM {
	return &riskScoreDBM{
		Country:       country,
		Climate:       v.Climate,
		ModernSlavery: v.ModernSlavery,
		Political:     v.Political,
		WaterStress:   v.WaterStress,
		NatureLoss:    v.NatureLoss,
	}
}

// expectedLossDBM is the database model for the static_expected_loss table.
// The hazard breakdown is stored as flat columns.
type expectedLossDBM struct {
	Country                  string  `gorm:"primaryKey;size:3"`
	TotalAnnualLoss          float64
	TotalAnnualLossPct       float64
	PresentValue30yr         float64 `gorm:"column:present_value_30yr"`
	HurricaneLoss            float64
	HurricanePct             float64
	FloodLoss                float64
	FloodPct                 float64
	HeatStressLoss           float64
	HeatStressPct            float64
	DroughtLoss              float64
	DroughtPct               float64
	ExtremePrecipitationLoss float64
	ExtremePrecipitationPct  float64
}

func (expectedLossDBM) TableName() string { return "static_expected_loss" }

func (dbm *expectedLossDBM) toDomain() models.ExpectedLoss {
	return models.ExpectedLoss{
		TotalAnnualLoss:    dbm.TotalAnnualLoss,
		TotalAnnualLossPct: dbm.TotalAnnualLossPct,
		PresentValue30yr:   dbm.PresentValue30yr,
		RiskBreakdown: models.RiskBreakdown{
			Hurricane:            models.HazardLoss{AnnualLoss: dbm.HurricaneLoss, AnnualLossPct: dbm.HurricanePct},
			Flood:                models.HazardLoss{AnnualLoss: dbm.FloodLoss, AnnualLossPct: dbm.FloodPct},
			HeatStress:           models.HazardLoss{AnnualLoss: dbm.HeatStressLoss, AnnualLossPct: dbm.HeatStressPct},
			Drought:              models.HazardLoss{AnnualLoss: dbm.DroughtLoss, AnnualLossPct: dbm.DroughtPct},
			ExtremePrecipitation: models.HazardLoss{AnnualLoss: dbm.ExtremePrecipitationLoss, AnnualLossPct: dbm.ExtremePrecipitationPct},
		},
	}
}

func expectedLossFromDomain(country string, l models.ExpectedLoss) *expectedLossDBM {
	b := l.RiskBreakdown
	return &expectedLossDBM{
		Country:                  country,
		TotalAnnualLoss:          l.TotalAnnualLoss,
		TotalAnnualLossPct:       l.TotalAnnualLossPct,
		PresentValue30yr:         l.PresentValue30yr,
		HurricaneLoss:            b.Hurricane.AnnualLoss,
		HurricanePct:             b.Hurricane.AnnualLossPct,
		FloodLoss:                b.Flood.AnnualLoss,
		FloodPct:                 b.Flood.AnnualLossPct,
		HeatStressLoss:           b.HeatStress.AnnualLoss,
		HeatStressPct:            b.HeatStress.AnnualLossPct,
		DroughtLoss:              b.Drought.AnnualLoss,
		DroughtPct:               b.Drought.AnnualLossPct,
		ExtremePrecipitationLoss: b.ExtremePrecipitation.AnnualLoss,
		ExtremePrecipitationPct:  b.ExtremePrecipitation.AnnualLossPct,
	}
}

// supplyRowDBM is one (country, sector) row header of the IO table. Rows are
// stored separately from their edges so an empty row keeps its position.
type supplyRowDBM struct {
	Country     string `gorm:"primaryKey;size:16"`
	RowPosition int    `gorm:"primaryKey;autoIncrement:false"`
	Sector      string `gorm:"size:16;not null"`
}

func (supplyRowDBM) TableName() string { return "io_rows" }

// supplyEdgeDBM is one supplier of one (country, sector) row of the IO table.
// RowPosition orders the sectors of a country, Position orders suppliers in a row.
// The default row is stored under the country "_default".
type supplyEdgeDBM struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	Country         string `gorm:"size:16;not null;index:idx_supply_row"`
	Sector          string `gorm:"size:16;not null;index:idx_supply_row"`
	RowPosition     int    `gorm:"not null"`
	SupplierCountry string `gorm:"size:3;not null"`
	SupplierSector  string `gorm:"size:16;not null"`
	Coefficient     float64
	Position        int `gorm:"not null"`
}

func (supplyEdgeDBM) TableName() string { return "io_coefficients" }

func (dbm *supplyEdgeDBM) toDomain() models.RawSupplyEdge {
	return models.RawSupplyEdge{
		Country:     dbm.SupplierCountry,
		Sector:      dbm.SupplierSector,
		Coefficient: dbm.Coefficient,
	}
}
