package hepsiburada

import "github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"

// listingsPage is one offset/limit page of the merchant listings endpoint.
type listingsPage struct {
	Listings   []apiListing `json:"listings"`
	Offset     int          `json:"offset"`
	Limit      int          `json:"limit"`
	TotalCount int          `json:"totalCount"`
}

// apiListing is the wire shape of one listing. Only the fields the domain
// consumes are mapped.
type apiListing struct {
	HepsiburadaSKU string  `json:"hepsiburadaSku"`
	MerchantSKU    string  `json:"merchantSku"`
	ProductName    string  `json:"productName"`
	Price          float64 `json:"price"`
	AvailableStock int     `json:"availableStock"`
	Barcode        string  `json:"barcode"`
}

// mapListing converts one API payload into the domain listing shape with
// an explicit per-field mapping.
func mapListing(l apiListing) domain.HepsiburadaListing {
	return domain.HepsiburadaListing{
		ListingID:      l.HepsiburadaSKU,
		MerchantSKU:    l.MerchantSKU,
		Title:          l.ProductName,
		Price:          l.Price,
		AvailableStock: l.AvailableStock,
		Barcode:        l.Barcode,
	}
}

func mapListings(listings []apiListing) []domain.HepsiburadaListing {
	mapped := make([]domain.HepsiburadaListing, 0, len(listings))
	for _, l := range listings {
		mapped = append(mapped, mapListing(l))
	}
	return mapped
}
