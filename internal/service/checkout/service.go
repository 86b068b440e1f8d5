// Package checkout drives the checkout session lifecycle and the
// payment-confirmation commit. ConfirmPayment is the only writer of the
// paid transition and the single inventory decrement per transaction.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/internal/payment"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/money"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// Gateway is the payment provider boundary. Session state read through it
// is the source of truth for payment completion.
type Gateway interface {
	CreateSession(ctx context.Context, item payment.SessionItem, customerEmail string, md payment.SessionMetadata) (payment.Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (payment.Session, error)
}

type Repository interface {
	GetBook(ctx context.Context, id string) (model.Book, error)
	DecrementQuantity(ctx context.Context, bookID string) (bool, error)
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	GetOrderByTransactionID(ctx context.Context, transactionID string) (model.Order, error)
	MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (model.Order, error)
}

type Service struct {
	log  *zap.Logger
	repo Repository
	gw   Gateway
	now  func() time.Time
}

func NewService(repo Repository, gw Gateway, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		gw:   gw,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateCheckoutSession builds a provider session for a single book and
// returns the hosted payment url.
func (s *Service) CreateCheckoutSession(ctx context.Context, req model.CreateCheckoutSessionRequest) (string, error) {
	price, err := money.Normalize(req.Price)
	if err != nil {
		return "", err
	}
	qty := int64(req.Quantity)
	if qty < 1 {
		qty = 1
	}
	session, err := s.gw.CreateSession(ctx,
		payment.SessionItem{
			Name:       req.Name,
			Author:     req.Author,
			ImageURL:   req.Image,
			UnitAmount: money.ToCents(price),
			Quantity:   qty,
		},
		req.Customer.Email,
		payment.SessionMetadata{
			OrderID:       req.OrderID,
			BookID:        req.BookID,
			CustomerEmail: req.Customer.Email,
		})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// ConfirmPayment reconciles a checkout session into a committed order.
// Retried and concurrently delivered confirmations for the same payment
// intent all resolve to the same order: the transaction id is looked up
// first, and the orders table enforces its uniqueness so a losing racer
// surfaces as ErrDuplicateTransaction and is answered with the winner.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID string) (model.ConfirmPaymentResponse, error) {
	snap, err := s.gw.RetrieveSession(ctx, sessionID)
	if err != nil {
		return model.ConfirmPaymentResponse{}, err
	}
	if snap.PaymentStatus != payment.StatusPaid {
		return model.ConfirmPaymentResponse{}, errs.ErrPaymentIncomplete
	}
	txID := snap.PaymentIntent

	// idempotency gate
	if existing, err := s.repo.GetOrderByTransactionID(ctx, txID); err == nil {
		s.log.Debug("confirm retry, transaction already committed",
			zap.String("transaction_id", txID), zap.String("order_id", existing.ID))
		return confirmed(existing), nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.ConfirmPaymentResponse{}, err
	}

	if orderID := snap.Metadata["orderId"]; orderID != "" {
		return s.confirmPending(ctx, orderID, txID)
	}
	return s.commitFromSession(ctx, snap, txID)
}

// confirmPending marks a pre-created pending order paid. Stock was already
// reserved when that order was created, so no inventory mutation happens here.
func (s *Service) confirmPending(ctx context.Context, orderID, txID string) (model.ConfirmPaymentResponse, error) {
	order, err := s.repo.MarkOrderPaid(ctx, orderID, txID, s.now())
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateTransaction) {
			return s.winner(ctx, txID)
		}
		return model.ConfirmPaymentResponse{}, err
	}
	return confirmed(order), nil
}

// commitFromSession synthesizes the order from session metadata and takes
// one unit of stock.
func (s *Service) commitFromSession(ctx context.Context, snap payment.Session, txID string) (model.ConfirmPaymentResponse, error) {
	book, err := s.repo.GetBook(ctx, snap.Metadata["bookId"])
	if err != nil {
		return model.ConfirmPaymentResponse{}, err
	}

	now := s.now()
	order := model.Order{
		ID:            uuid.NewString(),
		BookID:        book.ID,
		BookTitle:     book.Title,
		CustomerEmail: snap.Metadata["customerEmail"],
		SellerEmail:   book.SellerEmail,
		Quantity:      1,
		Price:         book.Price,
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPaid,
		TransactionID: &txID,
		CreatedAt:     now,
		PaidAt:        &now,
	}
	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateTransaction) {
			// a concurrent confirmation won the insert; it owns the decrement too
			return s.winner(ctx, txID)
		}
		return model.ConfirmPaymentResponse{}, err
	}

	taken, err := s.repo.DecrementQuantity(ctx, book.ID)
	if err != nil {
		// the order is committed either way; the missed decrement needs
		// operational follow-up, not a 500 to a paid customer
		s.log.Error("stock decrement failed after commit",
			zap.String("book_id", book.ID), zap.String("transaction_id", txID), zap.Error(err))
	} else if !taken {
		s.log.Warn("paid order committed on exhausted stock",
			zap.String("book_id", book.ID), zap.String("transaction_id", txID))
	}

	return confirmed(created), nil
}

func (s *Service) winner(ctx context.Context, txID string) (model.ConfirmPaymentResponse, error) {
	order, err := s.repo.GetOrderByTransactionID(ctx, txID)
	if err != nil {
		return model.ConfirmPaymentResponse{}, err
	}
	return confirmed(order), nil
}

func confirmed(order model.Order) model.ConfirmPaymentResponse {
	resp := model.ConfirmPaymentResponse{
		Success: true,
		OrderID: order.ID,
	}
	if order.TransactionID != nil {
		resp.TransactionID = *order.TransactionID
	}
	return resp
}
