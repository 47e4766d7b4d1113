package service

import (
	"context"
	"errors"
	"fmt"

	"pageturn/internal/apperr"
	"pageturn/internal/client"
	"pageturn/internal/config"
	"pageturn/internal/dto"
	"pageturn/internal/metrics"
	"pageturn/internal/model"
	"pageturn/internal/repository"
	"pageturn/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, buyerID string, req *dto.CreateOrderRequest) (*dto.OrderData, error)
	VerifyPayment(ctx context.Context, buyerID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
}

type paymentServiceImpl struct {
	db               *gorm.DB
	log              *zap.Logger
	validator        *validation.Validator
	razorpayClient   client.RazorpayClient
	keySecret        string
	currency         string
	bookRepo         repository.BookRepository
	paymentOrderRepo repository.PaymentOrderRepository
}

func NewPaymentService(
	db *gorm.DB,
	log *zap.Logger,
	razorpayClient client.RazorpayClient,
	razorpayCfg *config.Razorpay,
	bookRepo repository.BookRepository,
	paymentOrderRepo repository.PaymentOrderRepository,
) PaymentService {
	currency := razorpayCfg.Currency
	if currency == "" {
		currency = "INR"
	}

	return &paymentServiceImpl{
		db:               db,
		log:              log,
		validator:        validation.New(),
		razorpayClient:   razorpayClient,
		keySecret:        razorpayCfg.KeySecret,
		currency:         currency,
		bookRepo:         bookRepo,
		paymentOrderRepo: paymentOrderRepo,
	}
}

// MinorUnits converts a decimal price into the integer amount the gateway
// expects (price x 100, rounded).
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (s *paymentServiceImpl) CreateOrder(ctx context.Context, buyerID string, req *dto.CreateOrderRequest) (*dto.OrderData, error) {
	if buyerID == "" {
		return nil, apperr.Auth("Authentication required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, apperr.Validation("%s", validation.Message(err))
	}

	book, err := s.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	// must hold before the gateway is contacted
	if book.SellerID == buyerID {
		return nil, apperr.Forbidden("A seller cannot buy their own book")
	}

	if book.Status != model.BookStatusApproved {
		return nil, apperr.Validation("Book is not available for purchase")
	}

	amount := MinorUnits(book.Price)
	if req.Amount != 0 && req.Amount != amount {
		return nil, apperr.Validation("Amount does not match book price")
	}

	order, err := s.razorpayClient.CreateOrder(ctx, amount, s.currency, book.ID)
	if err != nil {
		metrics.GatewayOrders.WithLabelValues(metrics.ResultFailed).Inc()
		s.log.Error("razorpay create order", zap.String("book_id", book.ID), zap.Error(err))
		return nil, apperr.Upstream("create gateway order", err)
	}
	metrics.GatewayOrders.WithLabelValues(metrics.ResultCreated).Inc()

	if order.Amount == 0 {
		order.Amount = amount
	}
	if order.Currency == "" {
		order.Currency = s.currency
	}

	err = s.paymentOrderRepo.Create(ctx, &model.PaymentOrder{
		OrderID:  order.ID,
		BookID:   book.ID,
		BuyerID:  buyerID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   model.PaymentOrderCreated,
	})
	if err != nil {
		return nil, fmt.Errorf("store payment order in db: %w", err)
	}

	s.log.Info("gateway order created",
		zap.String("order_id", order.ID),
		zap.String("book_id", book.ID),
		zap.Int64("amount", order.Amount),
	)

	return &dto.OrderData{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// VerifyPayment fails closed: nothing is written unless the signature matches
// and the order belongs to this buyer and book.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, buyerID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if buyerID == "" {
		return nil, apperr.Auth("Authentication required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, apperr.Validation("%s", validation.Message(err))
	}

	if !client.VerifyPaymentSignature(s.keySecret, req.OrderID, req.PaymentID, req.Signature) {
		return nil, s.rejectVerification(req, "signature mismatch")
	}

	order, err := s.paymentOrderRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.rejectVerification(req, "unknown order")
		}
		return nil, fmt.Errorf("get payment order: %w", err)
	}

	if order.BookID != req.BookID || order.BuyerID != buyerID {
		return nil, s.rejectVerification(req, "order does not match book or buyer")
	}

	if order.Status == model.PaymentOrderPaid {
		if order.PaymentID != req.PaymentID {
			return nil, s.rejectVerification(req, "order already paid")
		}
		return &dto.VerifyPaymentResponse{
			Success:   true,
			PaymentID: req.PaymentID,
			Message:   "Payment verified successfully",
		}, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentOrderRepo.MarkPaid(ctx, tx, order.OrderID, req.PaymentID); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}

		if err := s.bookRepo.MarkSold(ctx, tx, order.BookID); err != nil {
			return fmt.Errorf("mark book sold: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.rejectVerification(req, "order or book no longer payable")
		}
		return nil, err
	}

	metrics.PaymentVerifications.WithLabelValues(metrics.ResultVerified).Inc()
	s.log.Info("payment verified",
		zap.String("order_id", order.OrderID),
		zap.String("payment_id", req.PaymentID),
		zap.String("book_id", order.BookID),
	)

	return &dto.VerifyPaymentResponse{
		Success:   true,
		PaymentID: req.PaymentID,
		Message:   "Payment verified successfully",
	}, nil
}

func (s *paymentServiceImpl) rejectVerification(req *dto.VerifyPaymentRequest, reason string) error {
	metrics.PaymentVerifications.WithLabelValues(metrics.ResultRejected).Inc()
	s.log.Warn("payment verification rejected",
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID),
		zap.String("reason", reason),
	)
	return apperr.Verification("Payment verification failed")
}
