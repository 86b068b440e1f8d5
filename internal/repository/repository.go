package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

type Repository interface {
	// books
	CreateBook(ctx context.Context, req model.CreateBookRequest, sellerEmail string, price float64) (model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	DecrementQuantity(ctx context.Context, bookID string) (bool, error)

	// orders
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	GetOrder(ctx context.Context, id string) (model.Order, error)
	GetOrderByTransactionID(ctx context.Context, transactionID string) (model.Order, error)
	ListOrdersByCustomer(ctx context.Context, email string) ([]model.Order, error)
	MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)

	// users
	ResolveRole(ctx context.Context, email string) (model.Role, error)

	// statistics
	CountBooks(ctx context.Context, sellerEmail string) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountOrders(ctx context.Context, f OrderFilter) (int, error)
	PaidOrderAmounts(ctx context.Context, f OrderFilter) ([]string, error)
}

// OrderFilter narrows order counts and revenue scans. Zero values mean "any".
type OrderFilter struct {
	Status        model.OrderStatus
	SellerEmail   string
	CustomerEmail string
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName  = `books`
	ordersTableName = `orders`
	usersTableName  = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
