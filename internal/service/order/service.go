package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Repository interface {
	GetBook(ctx context.Context, id string) (model.Book, error)
	DecrementQuantity(ctx context.Context, bookID string) (bool, error)
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	ListOrdersByCustomer(ctx context.Context, email string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)
}

type Service struct {
	log  *zap.Logger
	repo Repository
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// CreateOrder pre-creates a pending unpaid order and reserves its unit of
// stock up front; payment confirmation later flips it to paid without
// touching inventory again.
func (s *Service) CreateOrder(ctx context.Context, req model.CreateOrderRequest, customerEmail string) (model.Order, error) {
	book, err := s.repo.GetBook(ctx, req.BookID)
	if err != nil {
		return model.Order{}, err
	}
	taken, err := s.repo.DecrementQuantity(ctx, book.ID)
	if err != nil {
		return model.Order{}, err
	}
	if !taken {
		return model.Order{}, errs.ErrOutOfStock
	}
	return s.repo.CreateOrder(ctx, model.Order{
		ID:            uuid.NewString(),
		BookID:        book.ID,
		BookTitle:     book.Title,
		CustomerEmail: customerEmail,
		SellerEmail:   book.SellerEmail,
		Quantity:      1,
		Price:         book.Price,
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		CreatedAt:     time.Now().UTC(),
	})
}

func (s *Service) ListOrders(ctx context.Context, customerEmail string) ([]model.Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerEmail)
}

// CancelOrder sets the cancelled status unconditionally. Stock is not
// returned on cancel.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (model.Order, error) {
	return s.repo.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled)
}

// UpdateOrderStatus allows any transition among the known statuses; the
// storefront drives the progression and no graph is enforced here.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	return s.repo.UpdateOrderStatus(ctx, orderID, status)
}
