package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ruxsilva/basket-app/internal/domain"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type CatalogRepository interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
}

type HistoryRepository interface {
	Save(ctx context.Context, history *domain.BasketHistory) (*domain.BasketHistory, error)
	GetPagedByUser(ctx context.Context, userID int64, page, pageSize int) (*domain.PaginatedResult[domain.BasketHistory], error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OutboxEvent is one pending receipt notification, written in the same
// transaction as its basket history and published asynchronously.
type OutboxEvent struct {
	ID        int64
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}
