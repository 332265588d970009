package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rentaldesk/internal/core"
	"rentaldesk/internal/types"
)

func (s Service) ResolveImage(ctx context.Context, req ResolveImageRequest) (ResolveImageResult, error) {
	media, err := mediaLocation(req.Media)
	if err != nil {
		return ResolveImageResult{}, err
	}

	query := types.CarImageQuery{
		StoredImagePath:        req.Image,
		RegistrationIdentifier: req.Registration,
		CategoryLabel:          req.Category,
	}
	var selected *types.Car
	if strings.TrimSpace(req.CatalogPath) != "" && strings.TrimSpace(req.Registration) != "" {
		catalog, err := s.Catalog.LoadCatalog(req.CatalogPath)
		if err != nil {
			return ResolveImageResult{}, err
		}
		car, ok := catalog.FindByRegistration(req.Registration)
		if !ok {
			return ResolveImageResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("no car with registration number %s", strings.TrimSpace(req.Registration)))
		}
		selected = &car
		query = car.ImageQuery()
	}

	resolution := core.NewImageResolver(media).Explain(query)
	assert.NotEmpty(ctx, resolution.URL, "resolved image url must not be empty")
	log.Debug().
		Str("tier", string(resolution.Tier)).
		Str("url", resolution.URL).
		Msg("resolved car image")

	return ResolveImageResult{
		URL:   resolution.URL,
		Tier:  resolution.Tier,
		Match: resolution.Match,
		Car:   selected,
	}, nil
}

// mediaLocation validates the configured media location and fills in
// defaults for everything except the media root.
func mediaLocation(media types.MediaLocation) (types.MediaLocation, error) {
	if strings.TrimSpace(media.MediaRoot) == "" {
		return types.MediaLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("media root is required")
	}
	media = media.WithDefaults()
	if !filepath.IsLocal(filepath.FromSlash(media.CarsSubdirectory)) {
		return types.MediaLocation{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cars subdirectory must be relative to the media root")
	}
	return media, nil
}
