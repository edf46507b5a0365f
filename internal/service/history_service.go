package service

import (
	"context"
	"time"

	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/repository"
)

// HistoryService projects receipts into persisted basket history and serves
// paginated retrieval, newest first.
type HistoryService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Save maps the receipt into a history aggregate, stamps it with the
// current UTC instant and persists it atomically.
func (s *HistoryService) Save(ctx context.Context, receipt domain.Receipt, userID int64) (*domain.BasketHistory, error) {
	items := make([]domain.BasketHistoryItem, 0, len(receipt.Items()))
	for _, line := range receipt.Items() {
		items = append(items, domain.BasketHistoryItem{
			ItemName:  line.Item().Name(),
			ItemPrice: line.Item().Price(),
			Quantity:  line.Quantity(),
			LineTotal: line.LineTotal(),
		})
	}

	history := &domain.BasketHistory{
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
		TotalAmount:   receipt.TotalBeforeDiscount(),
		TotalDiscount: receipt.TotalDiscount(),
		FinalAmount:   receipt.FinalTotal(),
		Items:         items,
	}

	return s.repo.Save(ctx, history)
}

// GetPage reflects exactly the page and size it is given; clamping of
// out-of-range values happens at the request boundary.
func (s *HistoryService) GetPage(ctx context.Context, userID int64, page, pageSize int) (*domain.PaginatedResult[domain.BasketHistory], error) {
	return s.repo.GetPagedByUser(ctx, userID, page, pageSize)
}
