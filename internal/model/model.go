package model

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

type BookStatus string

const (
	BookStatusDraft     BookStatus = "draft"
	BookStatusPublished BookStatus = "published"
	BookStatusArchived  BookStatus = "archived"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Book struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Author      string     `json:"author" db:"author"`
	ImageURL    string     `json:"image" db:"image_url"`
	Price       float64    `json:"price" db:"price"`
	Quantity    int        `json:"quantity" db:"quantity"`
	Status      BookStatus `json:"status" db:"status"`
	SellerEmail string     `json:"sellerEmail" db:"seller_email"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

type Order struct {
	ID            string        `json:"id" db:"id"`
	BookID        string        `json:"bookId" db:"book_id"`
	BookTitle     string        `json:"bookTitle" db:"book_title"`
	CustomerEmail string        `json:"customerEmail" db:"customer_email"`
	SellerEmail   string        `json:"sellerEmail" db:"seller_email"`
	Quantity      int           `json:"quantity" db:"quantity"`
	Price         float64       `json:"price" db:"price"`
	OrderStatus   OrderStatus   `json:"orderStatus" db:"order_status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	TransactionID *string       `json:"transactionId,omitempty" db:"transaction_id"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	PaidAt        *time.Time    `json:"paidAt,omitempty" db:"paid_at"`
}

type User struct {
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Customer struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateCheckoutSessionRequest mirrors the storefront checkout payload.
// Price arrives as either a number or a decimal string, hence json.Number.
type CreateCheckoutSessionRequest struct {
	Name     string      `json:"name" validate:"required"`
	Author   string      `json:"author"`
	Image    string      `json:"image"`
	Price    json.Number `json:"price" validate:"required"`
	Quantity int         `json:"quantity"`
	Customer Customer    `json:"customer"`
	BookID   string      `json:"bookId" validate:"required"`
	OrderID  string      `json:"orderId"`
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type ConfirmPaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
}

type CreateOrderRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

type CreateBookRequest struct {
	Title    string      `json:"title" validate:"required"`
	Author   string      `json:"author" validate:"required"`
	Image    string      `json:"image"`
	Price    json.Number `json:"price" validate:"required"`
	Quantity int         `json:"quantity" validate:"gte=0"`
	Status   BookStatus  `json:"status"`
}

type AdminStats struct {
	TotalBooks    int     `json:"totalBooks"`
	TotalOrders   int     `json:"totalOrders"`
	TotalUsers    int     `json:"totalUsers"`
	PendingOrders int     `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type LibrarianStats struct {
	TotalBooks      int     `json:"totalBooks"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

type CustomerStats struct {
	TotalOrders  int     `json:"totalOrders"`
	ActiveOrders int     `json:"activeOrders"`
	TotalSpent   float64 `json:"totalSpent"`
}
