package dto

import "encoding/json"

type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentRequest is the payment document posted after a successful
// charge. Any client-supplied date is ignored.
type RecordPaymentRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	Price         float64         `json:"price" validate:"gte=0"`
	TransactionID string          `json:"transactionId" validate:"required"`
	PlanName      string          `json:"planName"`
	Details       json.RawMessage `json:"details"`
}
