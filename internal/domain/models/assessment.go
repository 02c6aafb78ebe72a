package models

import (
	"time"

	"github.com/turtacn/supplyrisk/pkg/constants"
)

// Country is a reference-table country entry.
type Country struct {
	Code   string `json:"code" yaml:"code"`
	Name   string `json:"name" yaml:"name"`
	Region string `json:"region" yaml:"region"`
}

// Sector is a reference-table economic sector entry.
type Sector struct {
	Code     string `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// DirectRisk is the root country's own risk and, when requested, its loss.
type DirectRisk struct {
	RiskVector   `yaml:",inline"`
	ExpectedLoss *ExpectedLoss `json:"expected_loss,omitempty" yaml:"expected_loss,omitempty"`
}

// IndirectRisk is the tier-weighted exposure inherited from upstream suppliers.
type IndirectRisk struct {
	RiskVector   `yaml:",inline"`
	ExpectedLoss *LossSummary `json:"expected_loss,omitempty" yaml:"expected_loss,omitempty"`
}

// Methodology documents the fixed weights used to produce a result.
type Methodology struct {
	TierWeights    []float64 `json:"tier_weights" yaml:"tier_weights"`
	DirectWeight   float64   `json:"direct_weight" yaml:"direct_weight"`
	IndirectWeight float64   `json:"indirect_weight" yaml:"indirect_weight"`
	MaxTiers       int       `json:"max_tiers" yaml:"max_tiers"`
	TopN           int       `json:"top_n" yaml:"top_n"`
	DeepTierFanout int       `json:"deep_tier_fanout" yaml:"deep_tier_fanout"`
	DeepTierCap    int       `json:"deep_tier_cap" yaml:"deep_tier_cap"`
}

// DefaultMethodology describes the propagation model for a given tier-1 width.
func DefaultMethodology(topN int) Methodology {
	return Methodology{
		TierWeights:    append([]float64(nil), constants.TierWeights[:]...),
		DirectWeight:   constants.DirectBlendWeight,
		IndirectWeight: constants.IndirectBlendWeight,
		MaxTiers:       len(constants.TierWeights),
		TopN:           topN,
		DeepTierFanout: constants.DeepTierFanout,
		DeepTierCap:    constants.DeepTierCap,
	}
}

// AssessmentResult is the complete answer for one (country, sector) request.
// AssessmentResult 是单个（国家，行业）请求的完整评估结果。
type AssessmentResult struct {
	AssessmentID   string                             `json:"assessment_id" yaml:"assessment_id"`
	Country        string                             `json:"country" yaml:"country"`
	CountryName    string                             `json:"country_name" yaml:"country_name"`
	Sector         string                             `json:"sector" yaml:"sector"`
	SectorName     string                             `json:"sector_name" yaml:"sector_name"`
	DirectRisk     DirectRisk                         `json:"direct_risk" yaml:"direct_risk"`
	IndirectRisk   IndirectRisk                       `json:"indirect_risk" yaml:"indirect_risk"`
	TotalRisk      RiskVector                         `json:"total_risk" yaml:"total_risk"`
	Tiers          []TierSummary                      `json:"tiers" yaml:"tiers"`
	TopSuppliers   []TierSupplier                     `json:"top_suppliers" yaml:"top_suppliers"`
	ClimateSources map[string]constants.ClimateSource `json:"climate_sources,omitempty" yaml:"climate_sources,omitempty"`
	Methodology    Methodology                        `json:"methodology" yaml:"methodology"`
	AssessedAt     time.Time                          `json:"assessed_at" yaml:"assessed_at"`
}
