package application

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"applyhub/internal/domain"
	"applyhub/internal/razorpay"
)

// Service runs the submission flow: store the resume, open a gateway order,
// persist the application, and later fold the checkout outcome back in.
type Service struct {
	apps    applicationRepo
	resumes resumeStore
	gateway orderCreator
	loggerf func(format string, args ...interface{})

	keyID    string
	fee      int64 // major currency units per submission
	currency string
}

func NewService(apps applicationRepo, resumes resumeStore, gateway orderCreator, keyID string, fee int64, currency string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(format string, args ...interface{}) {}
	}
	return &Service{
		apps:     apps,
		resumes:  resumes,
		gateway:  gateway,
		loggerf:  loggerf,
		keyID:    keyID,
		fee:      fee,
		currency: currency,
	}
}

// Submit saves the resume, creates a gateway order for the application fee
// and records the application as PENDING. The stored file is not removed if
// a later step fails; the cleanup tool picks up such orphans.
func (s *Service) Submit(ctx context.Context, form SubmitForm, file *multipart.FileHeader) (*SubmitResponse, error) {
	if file == nil {
		return nil, ErrResumeRequired
	}

	filename, err := s.resumes.Save(file)
	if err != nil {
		return nil, err
	}

	amount := s.fee * 100 // gateway wants minor currency units

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:         amount,
		Currency:       s.currency,
		Receipt:        fmt.Sprintf("rcpt_%d", time.Now().UnixNano()),
		PaymentCapture: 1,
	})
	if err != nil {
		s.loggerf("level=error msg=order create failed err=%v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	app := &domain.Application{
		FullName:      form.FullName,
		Email:         form.Email,
		Phone:         form.Phone,
		Gender:        form.Gender,
		DOB:           form.DOB,
		Bio:           form.Bio,
		Resume:        filename,
		OrderID:       order.ID,
		PaymentStatus: domain.PaymentStatusPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if isDuplicateOrder(err) {
			return nil, ErrDuplicateOrder
		}
		// The gateway order exists without a local record now. Keep the id
		// in the log so the payment can still be traced by hand.
		s.loggerf("level=error msg=application insert failed after order create order_id=%s err=%v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &SubmitResponse{
		OrderID: order.ID,
		Key:     s.keyID,
		Amount:  amount,
	}, nil
}

// VerifyPayment stores whatever outcome the client reports against the order.
// Unknown order ids are not an error: the update simply matches nothing, and
// repeating the same report is harmless.
func (s *Service) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) error {
	rows, err := s.apps.UpdatePaymentByOrderID(ctx, req.OrderID, req.PaymentID, domain.PaymentStatus(req.Status))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if rows == 0 {
		s.loggerf("level=info msg=payment update matched no application order_id=%s", req.OrderID)
	}
	return nil
}

// List returns every application, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return apps, nil
}

func isDuplicateOrder(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite has no structured code to inspect
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
