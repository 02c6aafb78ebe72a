package service

import (
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

// AggregationInput carries everything the aggregator needs for one assessment.
type AggregationInput struct {
	Country     string
	Sector      string
	TopN        int
	Tiers       models.TierEdges
	DirectRisk  models.RiskVector
	Losses      map[string]*models.ExpectedLoss
	SkipClimate bool
}

// RiskAggregator turns expanded tiers into a scored AssessmentResult.
// RiskAggregator 将展开后的各层供应商汇总为评估结果。
type RiskAggregator struct {
	refs repository.ReferenceRepository
}

// NewRiskAggregator creates a new RiskAggregator
func NewRiskAggregator(refs repository.ReferenceRepository) *RiskAggregator {
	return &RiskAggregator{refs: refs}
}

// NormalizedWeights divides each coefficient by the row sum. A zero sum yields
// all-zero weights.
func NormalizedWeights(edges []models.RawSupplyEdge) []float64 {
	var total float64
	for _, e := range edges {
		total += e.Coefficient
	}
	weights := make([]float64, len(edges))
	if total <= 0 {
		return weights
	}
	for i, e := range edges {
		weights[i] = e.Coefficient / total
	}
	return weights
}

// tierAggregate keeps the unrounded figures of one tier for the cross-tier sum.
type tierAggregate struct {
	risk    models.RiskVector
	loss    models.LossSummary
	summary models.TierSummary
}

// Aggregate scores every tier, combines them with the fixed tier weights and
// blends the result with the root's direct risk.
//
// Per-supplier loss contributions use the tier-local normalized weight only;
// the tier weight is applied once when tiers are combined.
func (a *RiskAggregator) Aggregate(in AggregationInput) *models.AssessmentResult {
	result := &models.AssessmentResult{
		Country:     in.Country,
		CountryName: a.refs.CountryName(in.Country),
		Sector:      in.Sector,
		SectorName:  a.refs.SectorName(in.Sector),
		DirectRisk:  models.DirectRisk{RiskVector: in.DirectRisk},
		Tiers:       make([]models.TierSummary, 0, len(in.Tiers)),
		Methodology: models.DefaultMethodology(in.TopN),
	}
	if !in.SkipClimate {
		result.DirectRisk.ExpectedLoss = in.Losses[in.Country].Clone()
	}

	var indirect models.RiskVector
	var indirectLoss models.LossSummary
	topSuppliers := make([]models.TierSupplier, 0)

	for i, edges := range in.Tiers {
		if i >= len(constants.TierWeights) {
			break
		}
		weight := constants.TierWeights[i]
		agg := a.aggregateTier(i+1, weight, edges, in.Losses, in.SkipClimate)

		indirect = indirect.Add(agg.risk.Scale(weight))
		indirectLoss = indirectLoss.Add(agg.loss.Scale(weight))

		result.Tiers = append(result.Tiers, agg.summary)
		topSuppliers = append(topSuppliers, agg.summary.Suppliers...)
	}

	indirectRounded := indirect.Round(2)
	result.IndirectRisk = models.IndirectRisk{RiskVector: indirectRounded}
	if !in.SkipClimate {
		rounded := indirectLoss.Rounded()
		result.IndirectRisk.ExpectedLoss = &rounded
	}

	result.TotalRisk = models.Blend(
		in.DirectRisk, constants.DirectBlendWeight,
		indirectRounded, constants.IndirectBlendWeight,
	).Round(2)
	result.TopSuppliers = topSuppliers

	return result
}

func (a *RiskAggregator) aggregateTier(tier int, weight float64, edges []models.RawSupplyEdge, losses map[string]*models.ExpectedLoss, skipClimate bool) tierAggregate {
	weights := NormalizedWeights(edges)
	agg := tierAggregate{
		summary: models.TierSummary{
			Tier:          tier,
			Weight:        weight,
			SupplierCount: len(edges),
			Suppliers:     make([]models.TierSupplier, 0, len(edges)),
		},
	}

	for i, edge := range edges {
		w := weights[i]
		risk := a.refs.RiskScores(edge.Country)
		contribution := risk.Scale(w)
		agg.risk = agg.risk.Add(contribution)

		supplier := models.TierSupplier{
			Tier:             tier,
			Country:          edge.Country,
			Sector:           edge.Sector,
			Coefficient:      edge.Coefficient,
			CountryName:      a.refs.CountryName(edge.Country),
			SectorName:       a.refs.SectorName(edge.Sector),
			NormalizedWeight: utils.Round4(w),
			DirectRisk:       risk,
			RiskContribution: contribution.Round(4),
		}

		if !skipClimate {
			if loss := losses[edge.Country]; loss != nil {
				share := loss.Summary().Scale(w)
				agg.loss = agg.loss.Add(share)
				supplier.ExpectedLossContribution = &models.SupplierLossContribution{
					AnnualLoss:       utils.Round2(share.TotalAnnualLoss),
					PresentValue30yr: utils.RoundWhole(share.PresentValue30yr),
				}
			}
		}

		agg.summary.Suppliers = append(agg.summary.Suppliers, supplier)
	}

	agg.summary.Risk = agg.risk.Round(2)
	if !skipClimate {
		rounded := agg.loss.Rounded()
		agg.summary.ExpectedLoss = &rounded
	}
	return agg
}
