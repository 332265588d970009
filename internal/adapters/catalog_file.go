package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rentaldesk/internal/ports"
	"rentaldesk/internal/shared"
	"rentaldesk/internal/types"
)

var validACTypes = map[types.ACType]struct{}{
	types.ACTypeAC:    {},
	types.ACTypeNonAC: {},
}

var validFuelTypes = map[types.FuelType]struct{}{
	types.FuelTypePetrol:   {},
	types.FuelTypeDiesel:   {},
	types.FuelTypeCNG:      {},
	types.FuelTypeElectric: {},
}

var validCarStatuses = map[types.CarStatus]struct{}{
	types.CarStatusAvailable:   {},
	types.CarStatusBooked:      {},
	types.CarStatusMaintenance: {},
}

type CatalogFileAdapter struct{}

func NewCatalogFileAdapter() CatalogFileAdapter {
	return CatalogFileAdapter{}
}

func (a CatalogFileAdapter) LoadCatalog(path string) (types.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
	}
	var catalog types.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog yaml").
			WithCause(err)
	}
	if catalog.APIVersion == "" {
		catalog.APIVersion = types.CatalogAPIVersion
	}
	if catalog.APIVersion != types.CatalogAPIVersion {
		return types.Catalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported catalog api_version %q", catalog.APIVersion))
	}
	if err := normalizeCars(catalog.Cars); err != nil {
		return types.Catalog{}, err
	}
	return catalog, nil
}

func (a CatalogFileAdapter) WriteCatalog(path string, catalog types.Catalog) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required")
	}
	if catalog.APIVersion == "" {
		catalog.APIVersion = types.CatalogAPIVersion
	}
	if err := normalizeCars(catalog.Cars); err != nil {
		return err
	}
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode catalog yaml").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create catalog directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write catalog file").
			WithCause(err)
	}
	return nil
}

// normalizeCars upper-cases registration numbers in place and rejects
// records that would not pass the back office car form.
func normalizeCars(cars []types.Car) error {
	seen := map[string]struct{}{}
	for i := range cars {
		car := &cars[i]
		if strings.TrimSpace(car.Category) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("car %d: category is required", i))
		}
		car.RegistrationNumber = shared.NormalizeRegistration(car.RegistrationNumber)
		if car.RegistrationNumber != "" {
			if _, ok := seen[car.RegistrationNumber]; ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeAlreadyExists).
					WithMsg(fmt.Sprintf("a car with registration number %s already exists", car.RegistrationNumber))
			}
			seen[car.RegistrationNumber] = struct{}{}
		}
		if car.ACType != "" {
			if _, ok := validACTypes[car.ACType]; !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("car %d: invalid ac_type %q", i, car.ACType))
			}
		}
		if car.FuelConsumption != "" {
			if _, ok := validFuelTypes[car.FuelConsumption]; !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("car %d: invalid fuel_consumption %q", i, car.FuelConsumption))
			}
		}
		if car.Status != "" {
			if _, ok := validCarStatuses[car.Status]; !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("car %d: invalid status %q", i, car.Status))
			}
		}
	}
	return nil
}

var _ ports.CatalogPort = CatalogFileAdapter{}
