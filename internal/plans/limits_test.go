package plans

import "testing"

func TestCatalogLimits(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name           string
		tier           string
		wantMaxGroups  int64
		wantMaxMembers int64
		wantAPI        bool
	}{
		{name: "basic", tier: "basic", wantMaxGroups: 3, wantMaxMembers: 5, wantAPI: false},
		{name: "premium", tier: "premium", wantMaxGroups: 15, wantMaxMembers: 25, wantAPI: false},
		{name: "business", tier: "business", wantMaxGroups: 35, wantMaxMembers: 35, wantAPI: true},
		{name: "unknown tier falls back to basic", tier: "enterprise", wantMaxGroups: 3, wantMaxMembers: 5, wantAPI: false},
		{name: "empty tier falls back to basic", tier: "", wantMaxGroups: 3, wantMaxMembers: 5, wantAPI: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := catalog.Limits(tt.tier)
			if limits.MaxGroups != tt.wantMaxGroups {
				t.Errorf("MaxGroups = %d, want %d", limits.MaxGroups, tt.wantMaxGroups)
			}
			if limits.MaxMembersPerGroup != tt.wantMaxMembers {
				t.Errorf("MaxMembersPerGroup = %d, want %d", limits.MaxMembersPerGroup, tt.wantMaxMembers)
			}
			if limits.CanUseAPI != tt.wantAPI {
				t.Errorf("CanUseAPI = %v, want %v", limits.CanUseAPI, tt.wantAPI)
			}
		})
	}
}

func TestCatalogEveryTierAllowsCategories(t *testing.T) {
	catalog := NewCatalog()
	for _, tier := range []Tier{TierBasic, TierPremium, TierBusiness} {
		if !catalog.Limits(string(tier)).CanUseCategories {
			t.Errorf("tier %s should allow categories", tier)
		}
	}
}
