package service

import (
	"sort"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	"github.com/turtacn/supplyrisk/pkg/constants"
)

// SupplierExpander walks the IO-coefficient table outward from a root node.
// SupplierExpander 从根节点出发沿投入产出系数表向外展开供应商。
type SupplierExpander struct {
	refs repository.ReferenceRepository
}

// NewSupplierExpander creates a new SupplierExpander
func NewSupplierExpander(refs repository.ReferenceRepository) *SupplierExpander {
	return &SupplierExpander{refs: refs}
}

// Expand returns at most topN edges of the (country, sector) row in table order.
// The repository's fallback chain guarantees a non-empty row.
func (e *SupplierExpander) Expand(country, sector string, topN int) []models.RawSupplyEdge {
	if topN < constants.MinTopN {
		topN = constants.MinTopN
	}
	row := e.refs.SupplyEdges(country, sector)
	if len(row) > topN {
		row = row[:topN]
	}
	out := make([]models.RawSupplyEdge, len(row))
	copy(out, row)
	return out
}

// ExpandTiers builds tiers 1..3. Tier 1 keeps table order; tiers 2 and 3 are
// deduplicated, ranked by coefficient and capped.
func (e *SupplierExpander) ExpandTiers(country, sector string, topN int) models.TierEdges {
	tiers := make(models.TierEdges, 0, len(constants.TierWeights))
	tiers = append(tiers, e.Expand(country, sector, topN))

	for tier := 2; tier <= len(constants.TierWeights); tier++ {
		fanout := topN
		if tier > 2 && fanout > constants.DeepTierFanout {
			fanout = constants.DeepTierFanout
		}

		var next []models.RawSupplyEdge
		for _, parent := range tiers[tier-2] {
			next = append(next, e.Expand(parent.Country, parent.Sector, fanout)...)
		}
		tiers = append(tiers, DedupeAndRank(next, constants.DeepTierCap))
	}
	return tiers
}

// DedupeAndRank collapses edges sharing (country, sector) to the strongest
// coefficient, sorts descending and keeps the first limit entries.
// Ties keep first-seen order.
func DedupeAndRank(edges []models.RawSupplyEdge, limit int) []models.RawSupplyEdge {
	index := make(map[string]int, len(edges))
	out := make([]models.RawSupplyEdge, 0, len(edges))
	for _, edge := range edges {
		if i, ok := index[edge.Key()]; ok {
			if edge.Coefficient > out[i].Coefficient {
				out[i].Coefficient = edge.Coefficient
			}
			continue
		}
		index[edge.Key()] = len(out)
		out = append(out, edge)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coefficient > out[j].Coefficient
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
