package trendyol

import "github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"

// productsPage is one page of the seller products endpoint.
type productsPage struct {
	Content    []apiProduct `json:"content"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"totalPages"`
	TotalCount int          `json:"totalElements"`
}

// apiProduct is the wire shape of one product. Only the fields the domain
// consumes are mapped; everything else in the payload is ignored.
type apiProduct struct {
	Barcode       string  `json:"barcode"`
	StockCode     string  `json:"stockCode"`
	ProductMainID string  `json:"productMainId"`
	Title         string  `json:"title"`
	SalePrice     float64 `json:"salePrice"`
	ListPrice     float64 `json:"listPrice"`
	Quantity      int     `json:"quantity"`
}

type priceUpdatePayload struct {
	Items []priceUpdateItem `json:"items"`
}

type priceUpdateItem struct {
	Barcode   string  `json:"barcode"`
	SalePrice float64 `json:"salePrice"`
	ListPrice float64 `json:"listPrice"`
}

type priceUpdateResponse struct {
	BatchRequestID string `json:"batchRequestId"`
}

type batchStatusResponse struct {
	BatchRequestID string            `json:"batchRequestId"`
	Status         string            `json:"status"`
	Items          []batchStatusItem `json:"items"`
}

type batchStatusItem struct {
	RequestItem    batchRequestItem `json:"requestItem"`
	Status         string           `json:"status"`
	FailureReasons []string         `json:"failureReasons"`
}

type batchRequestItem struct {
	Barcode string `json:"barcode"`
}

// mapProduct converts one API payload into the domain listing shape. Field
// selection is explicit so a payload change shows up here, not as a silent
// mis-mapped column downstream.
func mapProduct(p apiProduct) domain.TrendyolListing {
	return domain.TrendyolListing{
		Barcode:   p.Barcode,
		StockCode: p.StockCode,
		ModelCode: p.ProductMainID,
		Title:     p.Title,
		SalePrice: p.SalePrice,
		ListPrice: p.ListPrice,
		Quantity:  p.Quantity,
	}
}

func mapProducts(products []apiProduct) []domain.TrendyolListing {
	listings := make([]domain.TrendyolListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, mapProduct(p))
	}
	return listings
}

func mapBatchStatus(batchID string, resp *batchStatusResponse) *domain.BatchResult {
	result := &domain.BatchResult{BatchID: batchID}
	if resp.BatchRequestID != "" {
		result.BatchID = resp.BatchRequestID
	}
	for _, item := range resp.Items {
		result.Items = append(result.Items, domain.BatchItemResult{
			Barcode:        item.RequestItem.Barcode,
			Status:         item.Status,
			FailureReasons: item.FailureReasons,
		})
	}
	return result
}
