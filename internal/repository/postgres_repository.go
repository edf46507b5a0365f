package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "basket_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT name, price FROM items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var name string
		var price decimal.Decimal
		if err := rows.Scan(&name, &price); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, domain.NewItem(name, price))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *Repository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT name, price FROM items WHERE LOWER(name) = LOWER($1)`

	var stored string
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, name).Scan(&stored, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item by name: %w", err)
	}

	item := domain.NewItem(stored, price)
	return &item, nil
}

// Save persists the history header, its line items and the matching outbox
// event in a single transaction. Either everything commits or nothing does.
func (r *Repository) Save(ctx context.Context, history *domain.BasketHistory) (*domain.BasketHistory, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `INSERT INTO basket_history (user_id, created_at, total_amount, total_discount, final_amount)
	                VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err = tx.QueryRowContext(ctx, headerQuery,
		history.UserID,
		history.CreatedAt,
		history.TotalAmount,
		history.TotalDiscount,
		history.FinalAmount,
	).Scan(&history.ID)
	if err != nil {
		return nil, fmt.Errorf("insert basket history: %w", err)
	}

	itemQuery := `INSERT INTO basket_history_items (basket_history_id, item_name, item_price, quantity, line_total)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	for i := range history.Items {
		history.Items[i].BasketHistoryID = history.ID
		err = tx.QueryRowContext(ctx, itemQuery,
			history.ID,
			history.Items[i].ItemName,
			history.Items[i].ItemPrice,
			history.Items[i].Quantity,
			history.Items[i].LineTotal,
		).Scan(&history.Items[i].ID)
		if err != nil {
			return nil, fmt.Errorf("insert basket history item: %w", err)
		}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"basket_history_id": history.ID,
		"user_id":           history.UserID,
		"total_amount":      history.TotalAmount,
		"total_discount":    history.TotalDiscount,
		"final_amount":      history.FinalAmount,
		"created_at":        history.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal outbox payload: %w", err)
	}

	outboxQuery := `INSERT INTO basket_outbox (payload, created_at) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, outboxQuery, payload, history.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit history transaction: %w", err)
	}

	return history, nil
}

func (r *Repository) GetPagedByUser(ctx context.Context, userID int64, page, pageSize int) (*domain.PaginatedResult[domain.BasketHistory], error) {
	countQuery := `SELECT COUNT(*) FROM basket_history WHERE user_id = $1`

	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count basket history: %w", err)
	}

	offset := (page - 1) * pageSize

	headerQuery := `SELECT id, user_id, created_at, total_amount, total_discount, final_amount
	                FROM basket_history
	                WHERE user_id = $1
	                ORDER BY created_at DESC, id DESC
	                LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, headerQuery, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query basket history page: %w", err)
	}
	defer rows.Close()

	var histories []domain.BasketHistory
	for rows.Next() {
		var h domain.BasketHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.CreatedAt, &h.TotalAmount, &h.TotalDiscount, &h.FinalAmount); err != nil {
			return nil, fmt.Errorf("scan basket history row: %w", err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(histories) == 0 {
		return &domain.PaginatedResult[domain.BasketHistory]{
			Items:      []domain.BasketHistory{},
			TotalCount: totalCount,
		}, nil
	}

	ids := make([]int64, len(histories))
	for i, h := range histories {
		ids[i] = h.ID
	}

	itemsQuery := `SELECT id, basket_history_id, item_name, item_price, quantity, line_total
	               FROM basket_history_items
	               WHERE basket_history_id = ANY($1)
	               ORDER BY id`

	itemRows, err := r.db.QueryContext(ctx, itemsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query basket history items: %w", err)
	}
	defer itemRows.Close()

	itemsByHistory := make(map[int64][]domain.BasketHistoryItem)
	for itemRows.Next() {
		var item domain.BasketHistoryItem
		if err := itemRows.Scan(&item.ID, &item.BasketHistoryID, &item.ItemName, &item.ItemPrice, &item.Quantity, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("scan basket history item row: %w", err)
		}
		itemsByHistory[item.BasketHistoryID] = append(itemsByHistory[item.BasketHistoryID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range histories {
		histories[i].Items = itemsByHistory[histories[i].ID]
	}

	return &domain.PaginatedResult[domain.BasketHistory]{
		Items:      histories,
		TotalCount: totalCount,
	}, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash FROM users WHERE email = $1`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}

	return &user, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, payload, created_at FROM basket_outbox
	          WHERE processed_at IS NULL
	          ORDER BY id
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var event OutboxEvent
		if err := rows.Scan(&event.ID, &event.Payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	query := `UPDATE basket_outbox SET processed_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark outbox event processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
