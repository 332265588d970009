package app

import (
	"rentaldesk/internal/adapters"
	"rentaldesk/internal/ports"
)

// Service runs the car image use cases against the configured adapters.
type Service struct {
	Catalog      ports.CatalogPort
	SampleImages ports.SampleImagePort
	Reports      ports.ReportPort
}

// NewService wires the file-backed adapters.
func NewService() Service {
	return Service{
		Catalog:      adapters.NewCatalogFileAdapter(),
		SampleImages: adapters.NewSampleImageAdapter(),
		Reports:      adapters.NewReportFileAdapter(),
	}
}
