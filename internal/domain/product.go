package domain

import "time"

// PriceObservation is one row of the append-only price ledger. Rows are
// written once per product per catalog pull and never updated or deleted.
type PriceObservation struct {
	Barcode    string    `json:"barcode"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observedAt"`
}

// TrendyolListing is one product as returned by the Trendyol seller API.
// Barcode is the required primary identifier; StockCode and ModelCode are
// secondary identifiers that may be empty.
type TrendyolListing struct {
	Barcode   string  `json:"barcode"`
	StockCode string  `json:"stockCode,omitempty"`
	ModelCode string  `json:"modelCode,omitempty"`
	Title     string  `json:"title"`
	SalePrice float64 `json:"salePrice"`
	ListPrice float64 `json:"listPrice"`
	Quantity  int     `json:"quantity"`
}

// HepsiburadaListing is one product as returned by the Hepsiburada listing
// API. ListingID is the required primary identifier; Barcode may be empty.
type HepsiburadaListing struct {
	ListingID      string  `json:"listingId"`
	MerchantSKU    string  `json:"merchantSku"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	AvailableStock int     `json:"availableStock"`
	Barcode        string  `json:"barcode,omitempty"`
}

// UnifiedProduct is one row of the catalog reconciliation output,
// representing either a cross-marketplace match or an unmatched listing
// from either side. For an unmatched Trendyol listing HepsiburadaID is
// empty and Matched is false; it is never populated from an unrelated row.
type UnifiedProduct struct {
	StockID       string  `json:"stockId"`
	HepsiburadaID string  `json:"hepsiburadaId,omitempty"`
	ProductName   string  `json:"productName"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	Matched       bool    `json:"matched"`
}

// PriceClass is the historical-low classification of a candidate price.
type PriceClass string

const (
	ClassOneWeekLow  PriceClass = "1-week-low"
	ClassTwoWeekLow  PriceClass = "2-week-low"
	ClassOneMonthLow PriceClass = "1-month-low"
	ClassNone        PriceClass = "none"
)

// BatchItemResult is the per-item outcome of a submitted price update batch.
type BatchItemResult struct {
	Barcode        string   `json:"barcode"`
	Status         string   `json:"status"`
	FailureReasons []string `json:"failureReasons,omitempty"`
}

// BatchResult is the resolved state of a price update batch.
type BatchResult struct {
	BatchID string            `json:"batchRequestId"`
	Items   []BatchItemResult `json:"items"`
}

// AllSucceeded reports whether every item in the batch reached SUCCESS.
func (b *BatchResult) AllSucceeded() bool {
	for _, item := range b.Items {
		if item.Status != "SUCCESS" {
			return false
		}
	}
	return true
}

// PriceUpdateRequest is a single price change submitted to the marketplace.
type PriceUpdateRequest struct {
	Barcode   string  `json:"barcode" binding:"required"`
	SalePrice float64 `json:"salePrice" binding:"required"`
	ListPrice float64 `json:"listPrice" binding:"required"`
}

// ClassifyRequest asks which historical-low tier a candidate price hits.
type ClassifyRequest struct {
	Barcode  string  `json:"barcode" binding:"required"`
	NewPrice float64 `json:"newPrice" binding:"required"`
}
