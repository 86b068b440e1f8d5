package handler

import (
	"context"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	bookSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/book"
	checkoutSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/checkout"
	orderSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/order"
	statsSvc "github.com/ShahriarRefat0/Book2Door-server/internal/service/stats"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CheckoutService = (*checkoutSvc.Service)(nil)
	_ OrderService    = (*orderSvc.Service)(nil)
	_ StatsService    = (*statsSvc.Service)(nil)
	_ BookService     = (*bookSvc.Service)(nil)
)

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req model.CreateCheckoutSessionRequest) (string, error)
	ConfirmPayment(ctx context.Context, sessionID string) (model.ConfirmPaymentResponse, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest, customerEmail string) (model.Order, error)
	ListOrders(ctx context.Context, customerEmail string) ([]model.Order, error)
	CancelOrder(ctx context.Context, orderID string) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)
}

type StatsService interface {
	AdminStats(ctx context.Context) (model.AdminStats, error)
	LibrarianStats(ctx context.Context, sellerEmail string) (model.LibrarianStats, error)
	CustomerStats(ctx context.Context, customerEmail string) (model.CustomerStats, error)
}

type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest, sellerEmail string) (model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
}

// RoleResolver answers which role the user store assigns to a verified
// principal. Client-supplied roles are never trusted.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (model.Role, error)
}
