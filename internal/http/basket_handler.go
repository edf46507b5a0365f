package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/service"
)

type BasketProcessor interface {
	BuildBasket(ctx context.Context, lines []service.RequestedLine) (domain.Basket, error)
	ProcessBasket(basket domain.Basket) domain.Receipt
}

type HistorySaver interface {
	Save(ctx context.Context, receipt domain.Receipt, userID int64) (*domain.BasketHistory, error)
}

type BasketHandler struct {
	baskets BasketProcessor
	history HistorySaver
	timeout time.Duration
}

func NewBasketHandler(baskets BasketProcessor, history HistorySaver, timeout time.Duration) *BasketHandler {
	return &BasketHandler{
		baskets: baskets,
		history: history,
		timeout: timeout,
	}
}

type BasketLineDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type BasketRequestDTO struct {
	Items []BasketLineDTO `json:"items"`
}

type ReceiptLineDTO struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type DiscountDTO struct {
	Name           string          `json:"name"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountReason string          `json:"discount_reason"`
}

type ReceiptResponseDTO struct {
	Items               []ReceiptLineDTO `json:"items"`
	Discounts           []DiscountDTO    `json:"discounts"`
	TotalBeforeDiscount decimal.Decimal  `json:"total_before_discount"`
	TotalDiscount       decimal.Decimal  `json:"total_discount"`
	FinalTotal          decimal.Decimal  `json:"final_total"`
}

// POST /api/v1/basket
func (h *BasketHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req BasketRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_basket", "basket must contain at least one item")
		return
	}

	lines := make([]service.RequestedLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 0 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative")
			return
		}
		lines = append(lines, service.RequestedLine{Name: item.Name, Quantity: item.Quantity})
	}

	basket, err := h.baskets.BuildBasket(ctx, lines)
	if err != nil {
		log.Printf("failed to build basket request_id = %v: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve basket items")
		return
	}

	// Unknown names were dropped during resolution; a basket with nothing
	// left is rejected here, not inside the processor.
	if len(basket.Items()) == 0 {
		respondError(w, http.StatusBadRequest, "empty_basket", "no basket items could be resolved")
		return
	}

	receipt := h.baskets.ProcessBasket(basket)

	if _, err := h.history.Save(ctx, receipt, userID); err != nil {
		log.Printf("failed to save basket history request_id = %v: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save basket history")
		return
	}

	respondJSON(w, http.StatusOK, toReceiptDTO(receipt))
}

func toReceiptDTO(receipt domain.Receipt) ReceiptResponseDTO {
	items := make([]ReceiptLineDTO, 0, len(receipt.Items()))
	for _, line := range receipt.Items() {
		items = append(items, ReceiptLineDTO{
			Name:      line.Item().Name(),
			Price:     line.Item().Price(),
			Quantity:  line.Quantity(),
			LineTotal: line.LineTotal(),
		})
	}

	discounts := make([]DiscountDTO, 0, len(receipt.Discounts()))
	for _, d := range receipt.Discounts() {
		discounts = append(discounts, DiscountDTO{
			Name:           d.ItemName,
			OriginalPrice:  d.OriginalPrice,
			DiscountAmount: d.DiscountAmount,
			DiscountReason: d.DiscountReason,
		})
	}

	return ReceiptResponseDTO{
		Items:               items,
		Discounts:           discounts,
		TotalBeforeDiscount: receipt.TotalBeforeDiscount(),
		TotalDiscount:       receipt.TotalDiscount(),
		FinalTotal:          receipt.FinalTotal(),
	}
}
