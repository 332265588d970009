package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rentaldesk/internal/core"
	"rentaldesk/internal/types"
)

// Inspect resolves the image of every car in the catalog so operators can
// see which records fall back to scanned files or the placeholder.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	media, err := mediaLocation(req.Media)
	if err != nil {
		return InspectResult{}, err
	}
	if strings.TrimSpace(req.CatalogPath) == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required")
	}
	catalog, err := s.Catalog.LoadCatalog(req.CatalogPath)
	if err != nil {
		return InspectResult{}, err
	}

	resolver := core.NewImageResolver(media)
	counts := map[types.ResolutionTier]int{}
	result := InspectResult{Cars: make([]InspectedCar, 0, len(catalog.Cars))}
	for _, car := range catalog.Cars {
		if err := ctx.Err(); err != nil {
			return InspectResult{}, err
		}
		resolution := resolver.Explain(car.ImageQuery())
		counts[resolution.Tier]++
		result.Cars = append(result.Cars, InspectedCar{Car: car, Resolution: resolution})
	}
	for _, tier := range types.ResolutionTiers {
		result.Tiers = append(result.Tiers, InspectTierSummary{Tier: tier, Count: counts[tier]})
	}

	if strings.TrimSpace(req.OutputDir) != "" {
		records := make([]types.ImageReportRecord, 0, len(result.Cars))
		for _, inspected := range result.Cars {
			records = append(records, types.ImageReportRecord{
				Registration: inspected.Car.RegistrationNumber,
				Category:     inspected.Car.Category,
				Tier:         inspected.Resolution.Tier,
				URL:          inspected.Resolution.URL,
				Match:        inspected.Resolution.Match,
			})
		}
		path, err := s.Reports.WriteImageReport(req.OutputDir, records)
		if err != nil {
			return InspectResult{}, err
		}
		log.Info().Str("path", path).Int("cars", len(records)).Msg("wrote image report")
		result.ReportPath = path
	}
	return result, nil
}
