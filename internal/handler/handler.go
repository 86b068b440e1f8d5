package handler

import (
	"net/http"

	"github.com/IBM/sarama"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/kafka"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/validate"
	_ "github.com/ShahriarRefat0/Book2Door-server/swagger"
)

type Handler struct {
	checkoutSvc CheckoutService
	orderSvc    OrderService
	statsSvc    StatsService
	bookSvc     BookService
	roles       RoleResolver
	enqueuer    Enqueuer
	jwtKey      []byte
	topic       string
	log         *zap.Logger
}

type Deps struct {
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	StatsSvc    StatsService
	BookSvc     BookService
	Roles       RoleResolver
	Producer    sarama.SyncProducer
	JWTKey      []byte
	Kafka       kafka.Config
}

func New(deps Deps, log *zap.Logger) *Handler {
	return &Handler{
		checkoutSvc: deps.CheckoutSvc,
		orderSvc:    deps.OrderSvc,
		statsSvc:    deps.StatsSvc,
		bookSvc:     deps.BookSvc,
		roles:       deps.Roles,
		enqueuer:    NewEnqueuer(deps.Producer),
		jwtKey:      deps.JWTKey,
		topic:       deps.Kafka.Topic,
		log:         log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)

	authAPI := api.Group("", jwtAuthentication(h.jwtKey))

	authAPI.POST("/books", h.CreateBook, requireRole(h.roles, model.RoleLibrarian))

	authAPI.POST("/create-checkout-session", h.CreateCheckoutSession)
	authAPI.POST("/payment-success", h.PaymentSuccess)

	authAPI.POST("/orders", h.CreateOrder)
	authAPI.GET("/orders", h.GetOrders)
	authAPI.PATCH("/orders/cancel/:id", h.CancelOrder)
	authAPI.PATCH("/orders/update-status/:id", h.UpdateOrderStatus, requireRole(h.roles, model.RoleLibrarian))

	authAPI.GET("/admin-statistics", h.AdminStatistics, requireRole(h.roles, model.RoleAdmin))
	authAPI.GET("/librarian-statistics", h.LibrarianStatistics, requireRole(h.roles, model.RoleLibrarian))
	authAPI.GET("/customer-statistics", h.CustomerStatistics, requireRole(h.roles, model.RoleCustomer))

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
