package application

// SubmitForm carries the multipart fields of a submission. Fields are stored
// as received; only the resume file itself is checked.
type SubmitForm struct {
	FullName string `form:"full_name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Gender   string `form:"gender"`
	DOB      string `form:"dob"`
	Bio      string `form:"bio"`
}

// SubmitResponse is what the payment widget on the client needs to open
// checkout for the freshly created order.
type SubmitResponse struct {
	OrderID string `json:"orderId"`
	Key     string `json:"key"`
	Amount  int64  `json:"amount"`
}

// VerifyPaymentRequest reports the outcome of a checkout attempt.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}
