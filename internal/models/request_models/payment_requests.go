package request_models

type CreateSubscriptionRequest struct {
	Country string `json:"country" binding:"required,oneof=UAE India"`
	Plan    string `json:"plan" binding:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
