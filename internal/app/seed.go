package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rentaldesk/internal/types"
)

type sampleCar struct {
	Car   types.Car
	Color string
}

var sampleCars = []sampleCar{
	{
		Car: types.Car{
			Category: "Ambassador", ACType: types.ACTypeAC, FuelConsumption: types.FuelTypePetrol,
			RegistrationNumber: "DL01AB0001", Price: 2000, PricePerHour: 250, PricePerKm: 15, TotalCars: 3,
		},
		Color: "#FF6B6B",
	},
	{
		Car: types.Car{
			Category: "Tata Sumo", ACType: types.ACTypeAC, FuelConsumption: types.FuelTypeDiesel,
			RegistrationNumber: "DL01AB0002", Price: 2500, PricePerHour: 300, PricePerKm: 18, TotalCars: 2,
		},
		Color: "#4ECDC4",
	},
	{
		Car: types.Car{
			Category: "Maruti Omni", ACType: types.ACTypeNonAC, FuelConsumption: types.FuelTypePetrol,
			RegistrationNumber: "DL01AB0003", Price: 1500, PricePerHour: 200, PricePerKm: 12, TotalCars: 5,
		},
		Color: "#95E1D3",
	},
	{
		Car: types.Car{
			Category: "Maruti Esteem", ACType: types.ACTypeAC, FuelConsumption: types.FuelTypePetrol,
			RegistrationNumber: "DL01AB0004", Price: 1800, PricePerHour: 225, PricePerKm: 14, TotalCars: 4,
		},
		Color: "#F38181",
	},
	{
		Car: types.Car{
			Category: "Mahindra Armada", ACType: types.ACTypeAC, FuelConsumption: types.FuelTypeDiesel,
			RegistrationNumber: "DL01AB0005", Price: 3500, PricePerHour: 400, PricePerKm: 22, TotalCars: 2,
		},
		Color: "#AA96DA",
	},
}

// Seed adds the sample fleet to the catalog and writes a colour block
// image for each new car under the cars subdirectory. Cars whose
// registration number is already present are skipped.
func (s Service) Seed(ctx context.Context, req SeedRequest) (SeedResult, error) {
	media, err := mediaLocation(req.Media)
	if err != nil {
		return SeedResult{}, err
	}
	if strings.TrimSpace(req.CatalogPath) == "" {
		return SeedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required")
	}
	catalog, err := s.Catalog.LoadCatalog(req.CatalogPath)
	if err != nil {
		if errbuilder.CodeOf(err) != errbuilder.CodeNotFound {
			return SeedResult{}, err
		}
		catalog = types.Catalog{APIVersion: types.CatalogAPIVersion}
	}

	result := SeedResult{}
	for _, sample := range sampleCars {
		if err := ctx.Err(); err != nil {
			return SeedResult{}, err
		}
		car := sample.Car
		if _, ok := catalog.FindByRegistration(car.RegistrationNumber); ok {
			log.Warn().Str("registration", car.RegistrationNumber).Msg("car already exists, skipping")
			result.Skipped = append(result.Skipped, car.RegistrationNumber)
			continue
		}
		filename := car.RegistrationNumber + ".jpg"
		imagePath := filepath.Join(media.MediaRoot, filepath.FromSlash(media.CarsSubdirectory), filename)
		if err := s.SampleImages.WriteSampleImage(imagePath, sample.Color); err != nil {
			return SeedResult{}, err
		}
		car.ID = catalog.NextID()
		car.Image = media.CarsSubdirectory + "/" + filename
		car.Status = types.CarStatusAvailable
		catalog.Cars = append(catalog.Cars, car)
		result.Created = append(result.Created, car)
		log.Info().
			Str("registration", car.RegistrationNumber).
			Str("category", car.Category).
			Float64("price", car.Price).
			Msg("created car")
	}

	if len(result.Created) > 0 {
		if err := s.Catalog.WriteCatalog(req.CatalogPath, catalog); err != nil {
			return SeedResult{}, err
		}
	}
	result.Total = len(catalog.Cars)
	return result, nil
}
