package dto

type CreateOrderRequest struct {
	Amount int64 `json:"amount"` // major units (rupees)
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	CourseName        string `json:"courseName"`
}

type VerifyPaymentResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}
