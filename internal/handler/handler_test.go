package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	saramamocks "github.com/IBM/sarama/mocks"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/handler"
	service_mocks "github.com/ShahriarRefat0/Book2Door-server/internal/handler/mocks"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/auth"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/validate"
)

const (
	testTopic = "orders"
	principal = "buyer@mail.dev"
)

// withPrincipal stands in for the jwt middleware: it puts a verified email
// into the request context so handlers under test can resolve the caller.
func withPrincipal(email string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(auth.SetAuthContext(req.Context(), email)))
			return next(c)
		}
	}
}

type mocks struct {
	checkout *service_mocks.MockCheckoutService
	order    *service_mocks.MockOrderService
	stats    *service_mocks.MockStatsService
	book     *service_mocks.MockBookService
	producer *saramamocks.SyncProducer
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*handler.Handler, mocks) {
	t.Helper()
	m := mocks{
		checkout: service_mocks.NewMockCheckoutService(ctrl),
		order:    service_mocks.NewMockOrderService(ctrl),
		stats:    service_mocks.NewMockStatsService(ctrl),
		book:     service_mocks.NewMockBookService(ctrl),
		producer: saramamocks.NewSyncProducer(t, nil),
	}
	h := handler.New(handler.Deps{
		CheckoutSvc: m.checkout,
		OrderSvc:    m.order,
		StatsSvc:    m.stats,
		BookSvc:     m.book,
		Producer:    m.producer,
		JWTKey:      []byte("test-key"),
		Kafka:       kafka.Config{Topic: testTopic},
	}, zap.NewNop())
	return h, m
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return e
}

func TestHandler_PaymentSuccess(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(m mocks)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"sessionId":"cs_test_1"}`,
			mockBehavior: func(m mocks) {
				m.checkout.EXPECT().
					ConfirmPayment(gomock.Any(), "cs_test_1").
					Return(model.ConfirmPaymentResponse{
						Success:       true,
						TransactionID: "pi_1",
						OrderID:       "8b9c0f4e-9ed1-4f39-bd11-8f0a8d4f2a10",
					}, nil)
				m.producer.ExpectSendMessageAndSucceed()
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"transactionId":"pi_1","orderId":"8b9c0f4e-9ed1-4f39-bd11-8f0a8d4f2a10"}`,
			},
		},
		{
			name: "ok. confirm retry returns the committed order",
			body: `{"sessionId":"cs_test_1"}`,
			mockBehavior: func(m mocks) {
				m.checkout.EXPECT().
					ConfirmPayment(gomock.Any(), "cs_test_1").
					Return(model.ConfirmPaymentResponse{
						Success:       true,
						TransactionID: "pi_1",
						OrderID:       "8b9c0f4e-9ed1-4f39-bd11-8f0a8d4f2a10",
					}, nil)
				m.producer.ExpectSendMessageAndSucceed()
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"transactionId":"pi_1","orderId":"8b9c0f4e-9ed1-4f39-bd11-8f0a8d4f2a10"}`,
			},
		},
		{
			name: "err. payment incomplete",
			body: `{"sessionId":"cs_test_1"}`,
			mockBehavior: func(m mocks) {
				m.checkout.EXPECT().
					ConfirmPayment(gomock.Any(), "cs_test_1").
					Return(model.ConfirmPaymentResponse{}, errs.ErrPaymentIncomplete)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"payment is not completed"}`,
			},
		},
		{
			name: "err. session not found",
			body: `{"sessionId":"cs_gone"}`,
			mockBehavior: func(m mocks) {
				m.checkout.EXPECT().
					ConfirmPayment(gomock.Any(), "cs_gone").
					Return(model.ConfirmPaymentResponse{}, errs.ErrSessionNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"checkout session not found"}`,
			},
		},
		{
			name: "err. provider unreachable",
			body: `{"sessionId":"cs_test_1"}`,
			mockBehavior: func(m mocks) {
				m.checkout.EXPECT().
					ConfirmPayment(gomock.Any(), "cs_test_1").
					Return(model.ConfirmPaymentResponse{}, errors.Wrap(errs.ErrGateway, "retrieve session"))
			},
			response: response{
				expectedCode: http.StatusBadGateway,
			},
		},
		{
			name:         "err. sessionId required",
			body:         `{}`,
			mockBehavior: func(m mocks) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, m := newTestHandler(t, ctrl)

			e := newEcho()
			e.POST("/payment-success", h.PaymentSuccess, withPrincipal(principal))

			r := httptest.NewRequest(http.MethodPost, "/payment-success", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	t.Run("ok. caller email overrides the payload", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newTestHandler(t, ctrl)

		m.checkout.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req model.CreateCheckoutSessionRequest) (string, error) {
				require.Equal(t, principal, req.Customer.Email)
				require.Equal(t, "19.99", req.Price.String())
				return "https://checkout.test/cs_1", nil
			})

		e := newEcho()
		e.POST("/create-checkout-session", h.CreateCheckoutSession, withPrincipal(principal))

		body := `{"name":"Clean Architecture","price":19.99,"bookId":"book-1","customer":{"email":"spoofed@mail.dev"}}`
		r := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"url":"https://checkout.test/cs_1"}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("err. no principal", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _ := newTestHandler(t, ctrl)

		e := newEcho()
		e.POST("/create-checkout-session", h.CreateCheckoutSession)

		body := `{"name":"Clean Architecture","price":19.99,"bookId":"book-1"}`
		r := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
	}
	type mockBehavior func(m mocks)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":"book-1"}`,
			mockBehavior: func(m mocks) {
				m.order.EXPECT().
					CreateOrder(gomock.Any(), model.CreateOrderRequest{BookID: "book-1"}, principal).
					Return(model.Order{ID: "order-1", BookID: "book-1"}, nil)
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name: "err. out of stock",
			body: `{"bookId":"book-1"}`,
			mockBehavior: func(m mocks) {
				m.order.EXPECT().
					CreateOrder(gomock.Any(), model.CreateOrderRequest{BookID: "book-1"}, principal).
					Return(model.Order{}, errs.ErrOutOfStock)
			},
			response: response{expectedCode: http.StatusConflict},
		},
		{
			name:         "err. bookId required",
			body:         `{}`,
			mockBehavior: func(m mocks) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			h, m := newTestHandler(t, ctrl)

			e := newEcho()
			e.POST("/orders", h.CreateOrder, withPrincipal(principal))

			r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(m)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
		})
	}
}

func TestHandler_CancelOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h, m := newTestHandler(t, ctrl)

	m.order.EXPECT().
		CancelOrder(gomock.Any(), "order-1").
		Return(model.Order{ID: "order-1", OrderStatus: model.OrderStatusCancelled}, nil)
	m.producer.ExpectSendMessageAndSucceed()

	e := newEcho()
	e.PATCH("/orders/cancel/:id", h.CancelOrder, withPrincipal(principal))

	r := httptest.NewRequest(http.MethodPatch, "/orders/cancel/order-1", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"orderStatus":"cancelled"`)
}

func TestHandler_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newTestHandler(t, ctrl)

		m.order.EXPECT().
			UpdateOrderStatus(gomock.Any(), "order-1", model.OrderStatusShipped).
			Return(model.Order{ID: "order-1", OrderStatus: model.OrderStatusShipped}, nil)
		m.producer.ExpectSendMessageAndSucceed()

		e := newEcho()
		e.PATCH("/orders/update-status/:id", h.UpdateOrderStatus, withPrincipal(principal))

		r := httptest.NewRequest(http.MethodPatch, "/orders/update-status/order-1", strings.NewReader(`{"status":"shipped"}`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("err. unknown status", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, _ := newTestHandler(t, ctrl)

		e := newEcho()
		e.PATCH("/orders/update-status/:id", h.UpdateOrderStatus, withPrincipal(principal))

		r := httptest.NewRequest(http.MethodPatch, "/orders/update-status/order-1", strings.NewReader(`{"status":"teleported"}`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Statistics(t *testing.T) {
	t.Parallel()

	t.Run("admin", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newTestHandler(t, ctrl)

		m.stats.EXPECT().
			AdminStats(gomock.Any()).
			Return(model.AdminStats{TotalBooks: 12, TotalOrders: 40, TotalUsers: 7, PendingOrders: 3, TotalRevenue: 22.5}, nil)

		e := newEcho()
		e.GET("/admin-statistics", h.AdminStatistics, withPrincipal("admin@book2door.dev"))

		r := httptest.NewRequest(http.MethodGet, "/admin-statistics", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"totalBooks":12,"totalOrders":40,"totalUsers":7,"pendingOrders":3,"totalRevenue":22.5}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("customer scope follows the principal", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h, m := newTestHandler(t, ctrl)

		m.stats.EXPECT().
			CustomerStats(gomock.Any(), principal).
			Return(model.CustomerStats{TotalOrders: 4, ActiveOrders: 1, TotalSpent: 15}, nil)

		e := newEcho()
		e.GET("/customer-statistics", h.CustomerStatistics, withPrincipal(principal))

		r := httptest.NewRequest(http.MethodGet, "/customer-statistics", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"totalOrders":4,"activeOrders":1,"totalSpent":15}`, strings.Trim(w.Body.String(), "\n"))
	})
}
