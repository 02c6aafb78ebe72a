package models

import "github.com/turtacn/supplyrisk/pkg/utils"

// HazardLoss is the annual loss attributed to a single peril.
type HazardLoss struct {
	AnnualLoss    float64 `json:"annual_loss" yaml:"annual_loss"`
	AnnualLossPct float64 `json:"annual_loss_pct" yaml:"annual_loss_pct"`
}

// RiskBreakdown splits an expected loss across the five modelled perils.
type RiskBreakdown struct {
	Hurricane            HazardLoss `json:"hurricane" yaml:"hurricane"`
	Flood                HazardLoss `json:"flood" yaml:"flood"`
	HeatStress           HazardLoss `json:"heat_stress" yaml:"heat_stress"`
	Drought              HazardLoss `json:"drought" yaml:"drought"`
	ExtremePrecipitation HazardLoss `json:"extreme_precipitation" yaml:"extreme_precipitation"`
}

// ExpectedLoss is a probabilistic annualised financial loss for one country.
// Figures are expressed against a fixed reference asset value.
// ExpectedLoss 是单个国家的概率年化财务损失。
type ExpectedLoss struct {
	TotalAnnualLoss    float64       `json:"total_annual_loss" yaml:"total_annual_loss"`
	TotalAnnualLossPct float64       `json:"total_annual_loss_pct" yaml:"total_annual_loss_pct"`
	PresentValue30yr   float64       `json:"present_value_30yr" yaml:"present_value_30yr"`
	RiskBreakdown      RiskBreakdown `json:"risk_breakdown" yaml:"risk_breakdown"`
}

// Clone returns an independent copy so shared snapshots are never mutated.
func (l *ExpectedLoss) Clone() *ExpectedLoss {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

// Summary reduces an expected loss to its headline figures.
func (l *ExpectedLoss) Summary() LossSummary {
	return LossSummary{
		TotalAnnualLoss:    l.TotalAnnualLoss,
		TotalAnnualLossPct: l.TotalAnnualLossPct,
		PresentValue30yr:   l.PresentValue30yr,
	}
}

// LossSummary carries the headline loss figures of a tier or of the indirect chain.
type LossSummary struct {
	TotalAnnualLoss    float64 `json:"total_annual_loss" yaml:"total_annual_loss"`
	TotalAnnualLossPct float64 `json:"total_annual_loss_pct" yaml:"total_annual_loss_pct"`
	PresentValue30yr   float64 `json:"present_value_30yr" yaml:"present_value_30yr"`
}

// Scale multiplies every figure by f.
func (s LossSummary) Scale(f float64) LossSummary {
	return LossSummary{
		TotalAnnualLoss:    s.TotalAnnualLoss * f,
		TotalAnnualLossPct: s.TotalAnnualLossPct * f,
		PresentValue30yr:   s.PresentValue30yr * f,
	}
}

// Add sums two summaries.
func (s LossSummary) Add(o LossSummary) LossSummary {
	return LossSummary{
		TotalAnnualLoss:    s.TotalAnnualLoss + o.TotalAnnualLoss,
		TotalAnnualLossPct: s.TotalAnnualLossPct + o.TotalAnnualLossPct,
		PresentValue30yr:   s.PresentValue30yr + o.PresentValue30yr,
	}
}

// Rounded applies the currency rounding policy: cents for loss and percent,
// whole units for present value.
func (s LossSummary) Rounded() LossSummary {
	return LossSummary{
		TotalAnnualLoss:    utils.Round2(s.TotalAnnualLoss),
		TotalAnnualLossPct: utils.Round2(s.TotalAnnualLossPct),
		PresentValue30yr:   utils.RoundWhole(s.PresentValue30yr),
	}
}

// SupplierLossContribution is one supplier's weighted share of its tier loss.
type SupplierLossContribution struct {
	AnnualLoss       float64 `json:"annual_loss" yaml:"annual_loss"`
	PresentValue30yr float64 `json:"present_value_30yr" yaml:"present_value_30yr"`
}
