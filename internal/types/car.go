package types

import "strings"

const CatalogAPIVersion = "rentaldesk/v1"

type Car struct {
	ID                 int       `yaml:"id"`
	Category           string    `yaml:"category"`
	ACType             ACType    `yaml:"ac_type"`
	TotalCars          int       `yaml:"total_cars"`
	RegistrationNumber string    `yaml:"registration_number,omitempty"`
	Image              string    `yaml:"image,omitempty"`
	Price              float64   `yaml:"price"`
	PricePerHour       float64   `yaml:"price_per_hour"`
	PricePerKm         float64   `yaml:"price_per_km"`
	FuelConsumption    FuelType  `yaml:"fuel_consumption"`
	Status             CarStatus `yaml:"status"`
}

func (c Car) ImageQuery() CarImageQuery {
	return CarImageQuery{
		StoredImagePath:        c.Image,
		RegistrationIdentifier: c.RegistrationNumber,
		CategoryLabel:          c.Category,
	}
}

type Catalog struct {
	APIVersion string `yaml:"api_version"`
	Cars       []Car  `yaml:"cars"`
}

// FindByRegistration matches registration numbers case-insensitively.
func (c Catalog) FindByRegistration(registration string) (Car, bool) {
	want := strings.TrimSpace(registration)
	if want == "" {
		return Car{}, false
	}
	for _, car := range c.Cars {
		if strings.EqualFold(car.RegistrationNumber, want) {
			return car, true
		}
	}
	return Car{}, false
}

func (c Catalog) NextID() int {
	next := 1
	for _, car := range c.Cars {
		if car.ID >= next {
			next = car.ID + 1
		}
	}
	return next
}
