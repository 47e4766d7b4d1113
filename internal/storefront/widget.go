package storefront

import (
	"context"
	"fmt"
	"sync"
)

const (
	storeName     = "PageTurn Book Store"
	defaultMethod = "UPI/Card"
)

// WidgetOptions configures one payment widget session.
type WidgetOptions struct {
	Key         string
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
}

func newWidgetOptions(key, title string, order orderHandle) WidgetOptions {
	return WidgetOptions{
		Key:         key,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        storeName,
		Description: fmt.Sprintf("Purchase of %q", title),
	}
}

type orderHandle struct {
	ID       string
	Amount   int64
	Currency string
}

type EventKind int

const (
	EventSuccess EventKind = iota
	EventFailure
	EventDismiss
)

// WidgetEvent is what the widget reports once the buyer is done with it.
type WidgetEvent struct {
	Kind EventKind

	// set for EventSuccess
	PaymentID string
	OrderID   string
	Signature string

	// set for EventFailure
	Reason string
}

// Widget is the gateway's hosted checkout. Open blocks until the buyer
// pays, the payment fails, or the widget is dismissed.
type Widget interface {
	Open(ctx context.Context, opts WidgetOptions) (WidgetEvent, error)
}

// LoadFunc fetches the widget, typically by pulling the gateway's script.
type LoadFunc func(ctx context.Context) (Widget, error)

// WidgetLoader loads the widget at most once. A failed load is not cached.
type WidgetLoader struct {
	load LoadFunc

	mu     sync.Mutex
	widget Widget
}

func NewWidgetLoader(load LoadFunc) *WidgetLoader {
	return &WidgetLoader{load: load}
}

func (l *WidgetLoader) Get(ctx context.Context) (Widget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.widget != nil {
		return l.widget, nil
	}

	w, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payment widget: %w", err)
	}
	l.widget = w
	return w, nil
}
