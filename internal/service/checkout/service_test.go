package checkout_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/internal/payment"
	checkout "github.com/ShahriarRefat0/Book2Door-server/internal/service/checkout"
	mock_checkout "github.com/ShahriarRefat0/Book2Door-server/internal/service/checkout/mocks"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/money"
)

const (
	sessionID = "cs_test_1"
	intentID  = "pi_1"
	bookID    = "7f8a4d9e-0000-4000-8000-000000000001"
)

func paidSession(md map[string]string) payment.Session {
	return payment.Session{
		ID:            sessionID,
		Status:        "complete",
		PaymentStatus: "paid",
		PaymentIntent: intentID,
		AmountTotal:   1250,
		Metadata:      md,
	}
}

func testBook() model.Book {
	return model.Book{
		ID:          bookID,
		Title:       "The Go Programming Language",
		Author:      "Donovan, Kernighan",
		Price:       12.50,
		Quantity:    1,
		Status:      model.BookStatusPublished,
		SellerEmail: "seller@book2door.dev",
	}
}

func TestService_ConfirmPayment(t *testing.T) {
	t.Parallel()

	type mocksT struct {
		repo *mock_checkout.MockRepository
		gw   *mock_checkout.MockGateway
	}
	tests := []struct {
		name         string
		mockBehavior func(m mocksT)
		wantOrderID  string
		wantTxID     string
		wantErr      error
	}{
		{
			name: "commits order and decrements stock",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"bookId": bookID, "customerEmail": "buyer@mail.dev"}), nil)
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{}, errs.ErrNotFound)
				m.repo.EXPECT().GetBook(gomock.Any(), bookID).Return(testBook(), nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o model.Order) (model.Order, error) {
						require.Equal(t, bookID, o.BookID)
						require.Equal(t, "buyer@mail.dev", o.CustomerEmail)
						require.Equal(t, "seller@book2door.dev", o.SellerEmail)
						require.Equal(t, 1, o.Quantity)
						require.InDelta(t, 12.50, o.Price, 1e-9)
						require.Equal(t, model.OrderStatusPending, o.OrderStatus)
						require.Equal(t, model.PaymentStatusPaid, o.PaymentStatus)
						require.NotNil(t, o.TransactionID)
						require.Equal(t, intentID, *o.TransactionID)
						require.NotNil(t, o.PaidAt)
						return o, nil
					})
				m.repo.EXPECT().DecrementQuantity(gomock.Any(), bookID).Return(true, nil)
			},
			wantTxID: intentID,
		},
		{
			name: "retry returns existing order without mutation",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"bookId": bookID}), nil)
				tx := intentID
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{ID: "order-1", TransactionID: &tx}, nil)
			},
			wantOrderID: "order-1",
			wantTxID:    intentID,
		},
		{
			name: "incomplete payment is rejected",
			mockBehavior: func(m mocksT) {
				s := paidSession(map[string]string{"bookId": bookID})
				s.Status = "open"
				s.PaymentStatus = "unpaid"
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).Return(s, nil)
			},
			wantErr: errs.ErrPaymentIncomplete,
		},
		{
			name: "losing racer is answered with the winner",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"bookId": bookID, "customerEmail": "buyer@mail.dev"}), nil)
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{}, errs.ErrNotFound)
				m.repo.EXPECT().GetBook(gomock.Any(), bookID).Return(testBook(), nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(model.Order{}, errs.ErrDuplicateTransaction)
				tx := intentID
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{ID: "winner-order", TransactionID: &tx}, nil)
				// no DecrementQuantity: the winner already took the unit
			},
			wantOrderID: "winner-order",
			wantTxID:    intentID,
		},
		{
			name: "pre-created pending order is marked paid without stock mutation",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"orderId": "order-9", "bookId": bookID}), nil)
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{}, errs.ErrNotFound)
				tx := intentID
				m.repo.EXPECT().MarkOrderPaid(gomock.Any(), "order-9", intentID, gomock.Any()).
					Return(model.Order{ID: "order-9", TransactionID: &tx}, nil)
			},
			wantOrderID: "order-9",
			wantTxID:    intentID,
		},
		{
			name: "exhausted stock still commits the paid order",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"bookId": bookID, "customerEmail": "buyer@mail.dev"}), nil)
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{}, errs.ErrNotFound)
				m.repo.EXPECT().GetBook(gomock.Any(), bookID).Return(testBook(), nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o model.Order) (model.Order, error) { return o, nil })
				m.repo.EXPECT().DecrementQuantity(gomock.Any(), bookID).Return(false, nil)
			},
			wantTxID: intentID,
		},
		{
			name: "unknown book fails the commit",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(paidSession(map[string]string{"bookId": "missing"}), nil)
				m.repo.EXPECT().GetOrderByTransactionID(gomock.Any(), intentID).
					Return(model.Order{}, errs.ErrNotFound)
				m.repo.EXPECT().GetBook(gomock.Any(), "missing").
					Return(model.Book{}, errs.ErrBookNotFound)
			},
			wantErr: errs.ErrBookNotFound,
		},
		{
			name: "session lookup failure propagates",
			mockBehavior: func(m mocksT) {
				m.gw.EXPECT().RetrieveSession(gomock.Any(), sessionID).
					Return(payment.Session{}, errs.ErrSessionNotFound)
			},
			wantErr: errs.ErrSessionNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			m := mocksT{
				repo: mock_checkout.NewMockRepository(c),
				gw:   mock_checkout.NewMockGateway(c),
			}
			tt.mockBehavior(m)

			svc := checkout.NewService(m.repo, m.gw, zap.NewNop())
			resp, err := svc.ConfirmPayment(context.Background(), sessionID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, resp.Success)
			require.Equal(t, tt.wantTxID, resp.TransactionID)
			if tt.wantOrderID != "" {
				require.Equal(t, tt.wantOrderID, resp.OrderID)
			} else {
				require.NotEmpty(t, resp.OrderID)
			}
		})
	}
}

// fakeStore emulates the order/book stores with the transaction-id
// uniqueness constraint, so concurrent confirmations exercise the real
// check-then-act race.
type fakeStore struct {
	mu         sync.Mutex
	book       model.Book
	orders     map[string]model.Order // by transaction id
	decrements int
}

func (f *fakeStore) GetBook(_ context.Context, id string) (model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.book.ID {
		return model.Book{}, errs.ErrBookNotFound
	}
	return f.book, nil
}

func (f *fakeStore) DecrementQuantity(_ context.Context, bookID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.book.ID != bookID || f.book.Quantity <= 0 {
		return false, nil
	}
	f.book.Quantity--
	f.decrements++
	return true, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order model.Order) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.TransactionID != nil {
		if _, ok := f.orders[*order.TransactionID]; ok {
			return model.Order{}, errs.ErrDuplicateTransaction
		}
		f.orders[*order.TransactionID] = order
	}
	return order, nil
}

func (f *fakeStore) GetOrderByTransactionID(_ context.Context, txID string) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[txID]; ok {
		return o, nil
	}
	return model.Order{}, errs.ErrNotFound
}

func (f *fakeStore) MarkOrderPaid(_ context.Context, orderID, txID string, paidAt time.Time) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[txID]; ok {
		return model.Order{}, errs.ErrDuplicateTransaction
	}
	o := model.Order{ID: orderID, TransactionID: &txID, PaymentStatus: model.PaymentStatusPaid, PaidAt: &paidAt}
	f.orders[txID] = o
	return o, nil
}

type fakeGateway struct {
	session payment.Session
}

func (g *fakeGateway) CreateSession(context.Context, payment.SessionItem, string, payment.SessionMetadata) (payment.Session, error) {
	return g.session, nil
}

func (g *fakeGateway) RetrieveSession(context.Context, string) (payment.Session, error) {
	return g.session, nil
}

func TestService_ConfirmPayment_Concurrent(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		book:   testBook(),
		orders: make(map[string]model.Order),
	}
	gw := &fakeGateway{session: paidSession(map[string]string{"bookId": bookID, "customerEmail": "buyer@mail.dev"})}
	svc := checkout.NewService(store, gw, zap.NewNop())

	const n = 16
	var wg sync.WaitGroup
	results := make([]model.ConfirmPaymentResponse, n)
	errsOut := make([]error, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errsOut[i] = svc.ConfirmPayment(context.Background(), sessionID)
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errsOut[i])
		require.True(t, results[i].Success)
		require.Equal(t, intentID, results[i].TransactionID)
		require.Equal(t, results[0].OrderID, results[i].OrderID, "all confirmations must resolve to the same order")
	}
	require.Len(t, store.orders, 1, "exactly one order per transaction id")
	require.Equal(t, 1, store.decrements, "exactly one inventory decrement")
	require.Equal(t, 0, store.book.Quantity)
}

func TestService_CreateCheckoutSession(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := mock_checkout.NewMockRepository(c)
	gw := mock_checkout.NewMockGateway(c)
	svc := checkout.NewService(repo, gw, zap.NewNop())

	gw.EXPECT().
		CreateSession(gomock.Any(), gomock.Any(), "buyer@mail.dev", gomock.Any()).
		DoAndReturn(func(_ context.Context, item payment.SessionItem, _ string, md payment.SessionMetadata) (payment.Session, error) {
			require.EqualValues(t, 1250, item.UnitAmount)
			require.EqualValues(t, 1, item.Quantity)
			require.Equal(t, bookID, md.BookID)
			return payment.Session{ID: sessionID, URL: "https://checkout.test/s/cs_test_1"}, nil
		})

	url, err := svc.CreateCheckoutSession(context.Background(), model.CreateCheckoutSessionRequest{
		Name:     "The Go Programming Language",
		Price:    "12.50",
		Customer: model.Customer{Email: "buyer@mail.dev"},
		BookID:   bookID,
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.test/s/cs_test_1", url)

	_, err = svc.CreateCheckoutSession(context.Background(), model.CreateCheckoutSessionRequest{
		Name:     "broken",
		Price:    "abc",
		Customer: model.Customer{Email: "buyer@mail.dev"},
		BookID:   bookID,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, money.ErrInvalidAmount))
}
