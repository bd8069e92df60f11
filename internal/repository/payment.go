package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"learntechnotes-backend/internal/model"
)

// PaymentRepository keeps an audit row per verified payment.
type PaymentRepository interface {
	Exists(ctx context.Context, paymentID string) (bool, error)
	Record(ctx context.Context, payment *model.Payment) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Exists(ctx context.Context, paymentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) Record(ctx context.Context, payment *model.Payment) error {
	if payment.VerifiedAt.IsZero() {
		payment.VerifiedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(payment).Error
}
