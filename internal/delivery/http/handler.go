package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/observability"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	classifier  *usecase.ClassifierService
	tracking    *usecase.TrackingService
	reconcile   *usecase.ReconcileService
	trendyol    domain.TrendyolClient
	hepsiburada domain.HepsiburadaClient
}

// NewHandler creates a new HTTP handler
func NewHandler(
	classifier *usecase.ClassifierService,
	tracking *usecase.TrackingService,
	reconcile *usecase.ReconcileService,
	trendyol domain.TrendyolClient,
	hepsiburada domain.HepsiburadaClient,
) *Handler {
	return &Handler{
		classifier:  classifier,
		tracking:    tracking,
		reconcile:   reconcile,
		trendyol:    trendyol,
		hepsiburada: hepsiburada,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trendyol-price-control",
		"version": "1.0.0",
	})
}

// ClassifyPrice reports the tightest historical-low tier a candidate
// price satisfies for a product.
func (h *Handler) ClassifyPrice(c *gin.Context) {
	var req domain.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode and newPrice are required"})
		return
	}

	class, err := h.classifier.Classify(c.Request.Context(), req.Barcode, req.NewPrice)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	observability.Classifications.WithLabelValues(string(class)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"barcode":        req.Barcode,
		"newPrice":       req.NewPrice,
		"classification": class,
	})
}

// UpdatePrice submits a price change to Trendyol and returns the batch handle.
func (h *Handler) UpdatePrice(c *gin.Context) {
	var req domain.PriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode, salePrice and listPrice are required"})
		return
	}

	batchID, err := h.tracking.SubmitPriceUpdate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"batchRequestId": batchID})
}

// BatchStatus resolves a previously returned batch handle.
func (h *Handler) BatchStatus(c *gin.Context) {
	batchID := c.Param("batchId")

	result, err := h.tracking.CheckBatchStatus(c.Request.Context(), batchID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrBatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batchRequestId": result.BatchID,
		"allSucceeded":   result.AllSucceeded(),
		"items":          result.Items,
	})
}

// ReconcileCatalogs pulls fresh snapshots of both marketplace catalogs and
// merges them into the unified record set.
func (h *Handler) ReconcileCatalogs(c *gin.Context) {
	ctx := c.Request.Context()

	trendyolListings, err := h.trendyol.FetchAllListings(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	hepsiburadaListings, err := h.hepsiburada.FetchAllListings(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	unified, err := h.reconcile.Reconcile(ctx, trendyolListings, hepsiburadaListings)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedListing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	matched := 0
	for _, record := range unified {
		if record.Matched {
			matched++
		}
	}
	observability.ReconcileRecords.WithLabelValues("matched").Add(float64(matched))
	observability.ReconcileRecords.WithLabelValues("unmatched").Add(float64(len(unified) - matched))

	c.JSON(http.StatusOK, gin.H{
		"total":   len(unified),
		"matched": matched,
		"records": unified,
	})
}

// PullCatalog fetches the Trendyol snapshot and appends it to the ledger.
func (h *Handler) PullCatalog(c *gin.Context) {
	stored, err := h.tracking.PullAndStore(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stored": stored})
}

// MonthlyHistory returns every observation recorded in a calendar month.
func (h *Handler) MonthlyHistory(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter must be 1-12"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query parameter is required"})
		return
	}

	observations, err := h.tracking.ObservationsForMonth(c.Request.Context(), time.Month(month), year)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNoHistory):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":        month,
		"year":         year,
		"count":        len(observations),
		"observations": observations,
	})
}
