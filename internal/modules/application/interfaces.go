package application

import (
	"context"
	"mime/multipart"

	"applyhub/internal/domain"
	"applyhub/internal/razorpay"
)

type resumeStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
}

type applicationRepo interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdatePaymentByOrderID(ctx context.Context, orderID, paymentID string, status domain.PaymentStatus) (int64, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
}
