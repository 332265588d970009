package app

import "rentaldesk/internal/types"

type ResolveImageRequest struct {
	Media       types.MediaLocation
	CatalogPath string
	// Registration selects a car from the catalog when CatalogPath is set;
	// otherwise it is used directly alongside Image and Category.
	Registration string
	Image        string
	Category     string
}

type ResolveImageResult struct {
	URL   string
	Tier  types.ResolutionTier
	Match string
	Car   *types.Car
}

type InspectRequest struct {
	Media       types.MediaLocation
	CatalogPath string
	// OutputDir, when set, receives an image report for the catalog.
	OutputDir string
}

type InspectedCar struct {
	Car        types.Car
	Resolution types.ImageResolution
}

type InspectTierSummary struct {
	Tier  types.ResolutionTier
	Count int
}

type InspectResult struct {
	Cars       []InspectedCar
	Tiers      []InspectTierSummary
	ReportPath string
}

type SeedRequest struct {
	Media       types.MediaLocation
	CatalogPath string
}

type SeedResult struct {
	Created []types.Car
	Skipped []string
	Total   int
}
