package models

// RawSupplyEdge is one entry of the input-output table: the given share of a
// (country, sector) row's inputs is sourced from Country/Sector.
// RawSupplyEdge 是投入产出表中的一条边。
type RawSupplyEdge struct {
	Country     string  `json:"country" yaml:"country"`
	Sector      string  `json:"sector" yaml:"sector"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// Key identifies the supplier node independent of how it was reached.
func (e RawSupplyEdge) Key() string {
	return e.Country + "|" + e.Sector
}

// TierSupplier is a supply edge enriched for presentation within one tier.
type TierSupplier struct {
	Tier                     int                       `json:"tier" yaml:"tier"`
	Country                  string                    `json:"country" yaml:"country"`
	Sector                   string                    `json:"sector" yaml:"sector"`
	Coefficient              float64                   `json:"coefficient" yaml:"coefficient"`
	CountryName              string                    `json:"country_name" yaml:"country_name"`
	SectorName               string                    `json:"sector_name" yaml:"sector_name"`
	NormalizedWeight         float64                   `json:"normalized_weight" yaml:"normalized_weight"`
	DirectRisk               RiskVector                `json:"direct_risk" yaml:"direct_risk"`
	RiskContribution         RiskVector                `json:"risk_contribution" yaml:"risk_contribution"`
	ExpectedLossContribution *SupplierLossContribution `json:"expected_loss_contribution,omitempty" yaml:"expected_loss_contribution,omitempty"`
}

// TierSummary aggregates every supplier found at one depth of the chain.
type TierSummary struct {
	Tier          int            `json:"tier" yaml:"tier"`
	Weight        float64        `json:"weight" yaml:"weight"`
	SupplierCount int            `json:"supplier_count" yaml:"supplier_count"`
	Risk          RiskVector     `json:"risk" yaml:"risk"`
	ExpectedLoss  *LossSummary   `json:"expected_loss,omitempty" yaml:"expected_loss,omitempty"`
	Suppliers     []TierSupplier `json:"suppliers" yaml:"suppliers"`
}

// TierEdges holds the deduplicated raw edges of tiers 1..3 in order.
type TierEdges [][]RawSupplyEdge

// Countries returns every distinct supplier country across all tiers,
// in first-seen order.
func (t TierEdges) Countries() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tier := range t {
		for _, e := range tier {
			if _, ok := seen[e.Country]; ok {
				continue
			}
			seen[e.Country] = struct{}{}
			out = append(out, e.Country)
		}
	}
	return out
}
