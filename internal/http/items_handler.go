package http

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

type CatalogProvider interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}

type ItemsHandler struct {
	catalog CatalogProvider
	timeout time.Duration
}

func NewItemsHandler(catalog CatalogProvider, timeout time.Duration) *ItemsHandler {
	return &ItemsHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ItemResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// GET /api/v1/items
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.catalog.GetAllItems(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load items")
		return
	}

	dtos := make([]ItemResponse, len(items))
	for i, item := range items {
		dtos[i] = ItemResponse{Name: item.Name(), Price: item.Price()}
	}

	respondJSON(w, http.StatusOK, &ItemsResponse{Items: dtos})
}
