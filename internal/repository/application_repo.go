package repository

import (
	"context"

	"gorm.io/gorm"

	"applyhub/internal/domain"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Application, error) {
	var a domain.Application
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdatePaymentByOrderID overwrites payment_id and payment_status on every
// record matching the order id and reports how many rows changed. Zero rows
// is not an error: reconciliation for an unknown order id is a no-op.
func (r *ApplicationRepository) UpdatePaymentByOrderID(ctx context.Context, orderID, paymentID string, status domain.PaymentStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_id":     paymentID,
			"payment_status": status,
		})
	return res.RowsAffected, res.Error
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	// empty slice, not nil: the listing endpoint serializes this as []
	apps := []domain.Application{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&apps).Error
	return apps, err
}

// ResumeFilenames returns the set of resume files referenced by any record.
// Used by the uploads cleanup tool to spot orphaned files on disk.
func (r *ApplicationRepository) ResumeFilenames(ctx context.Context) (map[string]struct{}, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Pluck("resume", &names).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}
