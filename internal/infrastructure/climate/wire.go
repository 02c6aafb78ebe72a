package climate

import (
	"github.com/turtacn/supplyrisk/internal/domain/models"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

type assessRequest struct {
	Country    string  `json:"country"`
	AssetValue float64 `json:"asset_value"`
}

type hazardFigure struct {
	AnnualLoss    float64 `json:"annual_loss"`
	AnnualLossPct float64 `json:"annual_loss_pct"`
}

type hazardBreakdown struct {
	Hurricane            hazardFigure `json:"hurricane"`
	Flood                hazardFigure `json:"flood"`
	HeatStress           hazardFigure `json:"heat_stress"`
	Drought              hazardFigure `json:"drought"`
	ExtremePrecipitation hazardFigure `json:"extreme_precipitation"`
}

// assessResponse mirrors the hazard service reply. Headline figures are
// pointers so a reply missing them is rejected instead of read as zero.
type assessResponse struct {
	ExpectedAnnualLoss    *float64         `json:"expected_annual_loss"`
	ExpectedAnnualLossPct *float64         `json:"expected_annual_loss_pct"`
	PresentValue30yr      *float64         `json:"present_value_30yr"`
	Country               string           `json:"country"`
	CountryName           string           `json:"country_name"`
	RiskBreakdown         *hazardBreakdown `json:"risk_breakdown"`
}

func (r *assessResponse) validate() error {
	switch {
	case r.ExpectedAnnualLoss == nil:
		return apperrors.ErrUpstream("hazard response missing expected_annual_loss")
	case r.ExpectedAnnualLossPct == nil:
		return apperrors.ErrUpstream("hazard response missing expected_annual_loss_pct")
	case r.PresentValue30yr == nil:
		return apperrors.ErrUpstream("hazard response missing present_value_30yr")
	case r.RiskBreakdown == nil:
		return apperrors.ErrUpstream("hazard response missing risk_breakdown")
	}
	return nil
}

func (f hazardFigure) toModel() models.HazardLoss {
	return models.HazardLoss{
		AnnualLoss:    utils.Round2(f.AnnualLoss),
		AnnualLossPct: utils.Round2(f.AnnualLossPct),
	}
}

// toExpectedLoss applies the rounding policy: cents everywhere, whole units
// for present value.
func (r *assessResponse) toExpectedLoss() *models.ExpectedLoss {
	return &models.ExpectedLoss{
		TotalAnnualLoss:    utils.Round2(*r.ExpectedAnnualLoss),
		TotalAnnualLossPct: utils.Round2(*r.ExpectedAnnualLossPct),
		PresentValue30yr:   utils.RoundWhole(*r.PresentValue30yr),
		RiskBreakdown: models.RiskBreakdown{
			Hurricane:            r.RiskBreakdown.Hurricane.toModel(),
			Flood:                r.RiskBreakdown.Flood.toModel(),
			HeatStress:           r.RiskBreakdown.HeatStress.toModel(),
			Drought:              r.RiskBreakdown.Drought.toModel(),
			ExtremePrecipitation: r.RiskBreakdown.ExtremePrecipitation.toModel(),
		},
	}
}
