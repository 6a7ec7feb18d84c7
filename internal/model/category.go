package model

// Category is the macro-tilt group an asset belongs to.
// Keep these values stable; they are intended for JSON and CSV output.
type Category string

const (
	CategoryUSEquities            Category = "us_equities"
	CategoryInternationalEquities Category = "international_equities"
	CategoryUSBonds               Category = "us_bonds"
	CategoryCommodities           Category = "commodities"
	CategoryOther                 Category = "other"
)

// Catalog names that carry a tilt. Matching is exact: "US equities" is CategoryOther.
const (
	AssetUSEquities            = "US Equities"
	AssetUSBonds               = "US Bonds"
	AssetInternationalEquities = "International Equities"
	AssetCommodities           = "Commodities"
	AssetRealEstate            = "Real Estate"
)

func CategoryFromName(name string) Category {
	switch name {
	case AssetUSEquities:
		return CategoryUSEquities
	case AssetInternationalEquities:
		return CategoryInternationalEquities
	case AssetUSBonds:
		return CategoryUSBonds
	case AssetCommodities:
		return CategoryCommodities
	default:
		return CategoryOther
	}
}
