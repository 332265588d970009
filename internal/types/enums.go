package types

type ResolutionTier string

const (
	ResolutionTierStored      ResolutionTier = "stored"
	ResolutionTierExact       ResolutionTier = "exact"
	ResolutionTierToken       ResolutionTier = "token"
	ResolutionTierPlaceholder ResolutionTier = "placeholder"
)

// ResolutionTiers lists the tiers in precedence order.
var ResolutionTiers = []ResolutionTier{
	ResolutionTierStored,
	ResolutionTierExact,
	ResolutionTierToken,
	ResolutionTierPlaceholder,
}

type ACType string

const (
	ACTypeAC    ACType = "AC"
	ACTypeNonAC ACType = "Non-AC"
)

type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeCNG      FuelType = "cng"
	FuelTypeElectric FuelType = "electric"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusBooked      CarStatus = "booked"
	CarStatusMaintenance CarStatus = "maintenance"
)
