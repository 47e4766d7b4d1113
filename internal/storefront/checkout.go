package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pageturn/internal/config"
	"pageturn/internal/dto"
	"pageturn/internal/model"
	"pageturn/internal/service"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNoBook       = errors.New("book not loaded")
	ErrOwnBook      = errors.New("you cannot buy your own book")
	ErrInProgress   = errors.New("payment already in progress")
	ErrCancelled    = errors.New("payment cancelled")
	ErrVerification = errors.New("payment verification failed")
)

// Confirmation is what the buyer sees after a verified payment.
type Confirmation struct {
	Title     string
	Author    string
	Price     decimal.Decimal
	Image     string
	Condition string

	PaymentID string
	Date      time.Time
	Method    string
}

// Checkout drives one listing page: load the book, then Buy.
type Checkout struct {
	api            APIClient
	widgets        *WidgetLoader
	gatewayKey     string
	uploadsBaseURL string
	now            func() time.Time

	mu           sync.Mutex
	book         *model.Book
	status       Status
	errMessage   string
	confirmation *Confirmation
}

func NewCheckout(cfg *config.Storefront, api APIClient, widgets *WidgetLoader) *Checkout {
	return &Checkout{
		api:            api,
		widgets:        widgets,
		gatewayKey:     cfg.GatewayKey,
		uploadsBaseURL: strings.TrimRight(cfg.UploadsBaseURL, "/"),
		now:            time.Now,
		status:         StatusIdle,
	}
}

func (c *Checkout) LoadBook(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := c.api.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.book = book
	c.status = StatusIdle
	c.errMessage = ""
	c.confirmation = nil
	return book, nil
}

// Status returns the current state and, for StatusError, the reason.
func (c *Checkout) Status() (Status, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.errMessage
}

func (c *Checkout) Confirmation() *Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

// ImageURL resolves a stored image reference to something a browser can load.
func (c *Checkout) ImageURL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.uploadsBaseURL + "/" + strings.TrimLeft(strings.ReplaceAll(ref, "\\", "/"), "/")
}

// Buy runs the purchase of the loaded book for buyerID. It returns the
// confirmation on success. Dismissing the widget yields ErrCancelled.
func (c *Checkout) Buy(ctx context.Context, buyerID string) (*Confirmation, error) {
	book, err := c.begin(buyerID)
	if err != nil {
		return nil, err
	}

	orderRes, err := c.api.CreateOrder(ctx, &dto.CreateOrderRequest{
		BookID: book.ID,
		Amount: service.MinorUnits(book.Price),
	})
	if err != nil {
		return nil, c.fail(err.Error(), err)
	}
	if !orderRes.Success || orderRes.Data == nil {
		return nil, c.fail("Could not create order", errors.New("create order: unsuccessful response"))
	}

	widget, err := c.widgets.Get(ctx)
	if err != nil {
		return nil, c.fail("Payment widget failed to load", err)
	}

	order := orderHandle{
		ID:       orderRes.Data.ID,
		Amount:   orderRes.Data.Amount,
		Currency: orderRes.Data.Currency,
	}
	event, err := widget.Open(ctx, newWidgetOptions(c.gatewayKey, book.Title, order))
	if err != nil {
		return nil, c.fail(err.Error(), err)
	}

	switch event.Kind {
	case EventFailure:
		return nil, c.fail(event.Reason, errors.New(event.Reason))
	case EventDismiss:
		c.setStatus(StatusCancelled, "")
		return nil, ErrCancelled
	}

	verifyRes, err := c.api.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		PaymentID: event.PaymentID,
		OrderID:   event.OrderID,
		Signature: event.Signature,
		BookID:    book.ID,
	})
	if err != nil {
		return nil, c.fail(err.Error(), err)
	}
	if !verifyRes.Success {
		msg := verifyRes.Message
		if msg == "" {
			msg = "Payment verification failed"
		}
		return nil, c.fail(msg, ErrVerification)
	}

	image := ""
	if len(book.Images) > 0 {
		image = c.ImageURL(book.Images[0])
	}

	confirmation := &Confirmation{
		Title:     book.Title,
		Author:    book.Author,
		Price:     book.Price,
		Image:     image,
		Condition: book.Condition,
		PaymentID: event.PaymentID,
		Date:      c.now(),
		Method:    defaultMethod,
	}

	c.mu.Lock()
	c.status = StatusSuccess
	c.errMessage = ""
	c.confirmation = confirmation
	c.mu.Unlock()

	return confirmation, nil
}

func (c *Checkout) begin(buyerID string) (*model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.book == nil {
		return nil, ErrNoBook
	}
	if c.status == StatusPending {
		return nil, ErrInProgress
	}
	if c.book.SellerID == buyerID {
		return nil, ErrOwnBook
	}

	c.status = StatusPending
	c.errMessage = ""
	c.confirmation = nil
	return c.book, nil
}

func (c *Checkout) fail(message string, err error) error {
	c.setStatus(StatusError, message)
	return err
}

func (c *Checkout) setStatus(status Status, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.errMessage = message
}
