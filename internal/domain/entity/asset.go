package entity

import (
	"sort"
	"strings"
)

// Asset is a named deliverable template gated by a minimum plan. The
// catalog is static configuration, not a mutable entity.
type Asset struct {
	Name      string
	MinPlan   Plan
	ObjectKey string
}

// AssetCatalog resolves template names to their delivery metadata.
type AssetCatalog struct {
	assets map[string]Asset
}

// DefaultCatalog returns the built-in template catalog.
func DefaultCatalog() *AssetCatalog {
	return NewAssetCatalog([]Asset{
		{Name: "saas", MinPlan: PlanStarter, ObjectKey: "saas.zip"},
		{Name: "ai", MinPlan: PlanPro, ObjectKey: "ai.zip"},
		{Name: "agency", MinPlan: PlanAgency, ObjectKey: "agency.zip"},
	})
}

// NewAssetCatalog builds a catalog from a list of assets.
func NewAssetCatalog(assets []Asset) *AssetCatalog {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		m[strings.ToLower(a.Name)] = a
	}
	return &AssetCatalog{assets: m}
}

// Resolve looks up an asset by template name, case-insensitively.
func (c *AssetCatalog) Resolve(name string) (Asset, bool) {
	a, ok := c.assets[strings.ToLower(name)]
	return a, ok
}

// Names returns the catalog's template names in stable order.
func (c *AssetCatalog) Names() []string {
	names := make([]string, 0, len(c.assets))
	for name := range c.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
