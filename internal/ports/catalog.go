package ports

import "rentaldesk/internal/types"

// CatalogPort supplies car records and persists seeded ones.
type CatalogPort interface {
	LoadCatalog(path string) (types.Catalog, error)
	WriteCatalog(path string, catalog types.Catalog) error
}
