package repository

import (
	"context"
	"pageturn/internal/model"
	"time"

	"gorm.io/gorm"
)

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *model.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID string) error
}

type paymentOrderRepoImpl struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) PaymentOrderRepository {
	return &paymentOrderRepoImpl{
		db: db,
	}
}

func (r *paymentOrderRepoImpl) Create(ctx context.Context, order *model.PaymentOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *paymentOrderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// MarkPaid records the payment id on a CREATED order. Re-marking with the same
// payment id is a no-op success.
func (r *paymentOrderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID, paymentID string) error {
	result := tx.WithContext(ctx).Model(&model.PaymentOrder{}).
		Where(`
			order_id = ?
			AND (status = ? OR (status = ? AND payment_id = ?))
		`,
			orderID,
			model.PaymentOrderCreated,
			model.PaymentOrderPaid, paymentID,
		).
		Updates(map[string]interface{}{
			"status":     model.PaymentOrderPaid,
			"payment_id": paymentID,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
