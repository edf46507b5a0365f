package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

type HistoryPager interface {
	GetPage(ctx context.Context, userID int64, page, pageSize int) (*domain.PaginatedResult[domain.BasketHistory], error)
}

type HistoryHandler struct {
	history HistoryPager
	timeout time.Duration
}

func NewHistoryHandler(history HistoryPager, timeout time.Duration) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		timeout: timeout,
	}
}

type HistoryItemDTO struct {
	ItemName  string          `json:"item_name"`
	ItemPrice decimal.Decimal `json:"item_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type HistoryDTO struct {
	ID            int64            `json:"id"`
	CreatedAt     string           `json:"created_at"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	TotalDiscount decimal.Decimal  `json:"total_discount"`
	FinalAmount   decimal.Decimal  `json:"final_amount"`
	Items         []HistoryItemDTO `json:"items"`
}

type HistoryPageDTO struct {
	Items      []HistoryDTO `json:"items"`
	TotalCount int          `json:"total_count"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// GET /api/v1/basket/history?page=&page_size=
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	page := parseQueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := parseQueryInt(r, "page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	result, err := h.history.GetPage(ctx, userID, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load basket history")
		return
	}

	dtos := make([]HistoryDTO, 0, len(result.Items))
	for _, history := range result.Items {
		items := make([]HistoryItemDTO, 0, len(history.Items))
		for _, item := range history.Items {
			items = append(items, HistoryItemDTO{
				ItemName:  item.ItemName,
				ItemPrice: item.ItemPrice,
				Quantity:  item.Quantity,
				LineTotal: item.LineTotal,
			})
		}
		dtos = append(dtos, HistoryDTO{
			ID:            history.ID,
			CreatedAt:     history.CreatedAt.Format(time.RFC3339),
			TotalAmount:   history.TotalAmount,
			TotalDiscount: history.TotalDiscount,
			FinalAmount:   history.FinalAmount,
			Items:         items,
		})
	}

	respondJSON(w, http.StatusOK, &HistoryPageDTO{
		Items:      dtos,
		TotalCount: result.TotalCount,
	})
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
