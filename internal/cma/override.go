package cma

import "advisor-mc-lab/internal/domain"

// Override is a partial replacement of an assumption set. Each field
// that is non-nil entirely replaces the corresponding map; there is no
// per-class merge.
type Override struct {
	Mu   map[domain.AssetClass]float64                       `json:"mu_ann,omitempty"`
	Vol  map[domain.AssetClass]float64                       `json:"vol_ann,omitempty"`
	Corr map[domain.AssetClass]map[domain.AssetClass]float64 `json:"corr,omitempty"`
}

// Apply returns base with every supplied field replaced wholesale.
func (o *Override) Apply(base domain.Assumptions) domain.Assumptions {
	if o == nil {
		return base
	}
	out := base
	if o.Mu != nil {
		out.Mu = o.Mu
	}
	if o.Vol != nil {
		out.Vol = o.Vol
	}
	if o.Corr != nil {
		out.Corr = o.Corr
	}
	return out
}
