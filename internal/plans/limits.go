// Package plans holds the canonical plan-limit catalog. The limits are
// static and injected into the services that gate mutations, so there is
// exactly one source of truth for every tier.
package plans

type Tier string

const (
	TierBasic    Tier = "basic"
	TierPremium  Tier = "premium"
	TierBusiness Tier = "business"
)

type Limits struct {
	MaxGroups               int64
	MaxMembersPerGroup      int64
	CanUploadReceipts       bool
	CanUseCategories        bool
	CanCreateBusinessGroups bool
	CanUseMultiCurrency     bool
	CanExportData           bool
	CanUseAPI               bool
	Price                   float64
}

// Catalog resolves a tier name to its limits.
type Catalog struct {
	limits map[Tier]Limits
}

func NewCatalog() *Catalog {
	return &Catalog{
		limits: map[Tier]Limits{
			TierBasic: {
				MaxGroups:          3,
				MaxMembersPerGroup: 5,
				CanUseCategories:   true,
				Price:              3,
			},
			TierPremium: {
				MaxGroups:           15,
				MaxMembersPerGroup:  25,
				CanUploadReceipts:   true,
				CanUseCategories:    true,
				CanUseMultiCurrency: true,
				CanExportData:       true,
				Price:               10,
			},
			TierBusiness: {
				MaxGroups:               35,
				MaxMembersPerGroup:      35,
				CanUploadReceipts:       true,
				CanUseCategories:        true,
				CanCreateBusinessGroups: true,
				CanUseMultiCurrency:     true,
				CanExportData:           true,
				CanUseAPI:               true,
				Price:                   35,
			},
		},
	}
}

// Limits returns the limits for tier. Unknown tiers fall back to the most
// restrictive plan.
func (c *Catalog) Limits(tier string) Limits {
	if l, ok := c.limits[Tier(tier)]; ok {
		return l
	}
	return c.limits[TierBasic]
}
