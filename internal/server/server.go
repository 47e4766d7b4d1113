package server

import (
	"context"
	"net/http"
	"strconv"

	"pageturn/internal/config"
	"pageturn/internal/handler"
	authmw "pageturn/internal/middleware"
	"pageturn/internal/model"
	"pageturn/internal/service"
	"pageturn/internal/token"
	"pageturn/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// multipart framing on top of the image limit
const bodyOverhead = 1 << 20

type Services struct {
	Auth     service.AuthService
	Book     service.BookService
	Payment  service.PaymentService
	Password service.PasswordService
}

type Server struct {
	echo            *echo.Echo
	tokens          *token.Manager
	authHandler     *handler.AuthHandler
	bookHandler     *handler.BookHandler
	paymentHandler  *handler.PaymentHandler
	passwordHandler *handler.PasswordHandler
}

func NewServer(cfg *config.Config, log *zap.Logger, tokens *token.Manager, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBytes+bodyOverhead, 10) + "B"))

	s := &Server{
		echo:            e,
		tokens:          tokens,
		authHandler:     handler.NewAuthHandler(services.Auth),
		bookHandler:     handler.NewBookHandler(services.Book, cfg.Upload),
		paymentHandler:  handler.NewPaymentHandler(services.Payment),
		passwordHandler: handler.NewPasswordHandler(log, services.Password),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- accounts --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)

	api.POST("/forgot-password", s.passwordHandler.ForgotPassword)
	api.POST("/reset-password", s.passwordHandler.ResetPassword)

	requireAuth := authmw.AuthMiddleware(s.tokens)

	// -------- catalogue --------
	api.POST("/sellBooks", s.bookHandler.SellBook, requireAuth)
	api.GET("/books", s.bookHandler.ListBooks, requireAuth)
	api.GET("/books/:id", s.bookHandler.GetBook, requireAuth)

	// -------- payments --------
	payments := api.Group("/payments", requireAuth)
	payments.POST("/create-order", s.paymentHandler.CreateOrder)
	payments.POST("/verify", s.paymentHandler.VerifyPayment)

	// -------- admin --------
	admin := api.Group("/admin", requireAuth, authmw.RequireRole(model.RoleAdmin))
	admin.PATCH("/books/:id/status", s.bookHandler.UpdateStatus)
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
