package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// ProviderError carries the processor's message and HTTP status unchanged.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrPaymentProvider, e.Err}
}

// ProviderStatus returns the status to answer with for a provider failure:
// the provider's own 4xx when it rejected the request, 502 otherwise.
func ProviderStatus(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Status >= 400 && pe.Status < 500 {
		return pe.Status
	}
	return http.StatusBadGateway
}

type StripeProvider struct {
	intents *paymentintent.Client
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return NewStripeProviderWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeProviderWithBackend points the client at a custom backend, e.g. a
// local stripe-mock.
func NewStripeProviderWithBackend(secretKey string, backend stripe.Backend) *StripeProvider {
	return &StripeProvider{intents: &paymentintent.Client{B: backend, Key: secretKey}}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.intents.New(params)
	if err != nil {
		return "", wrapStripeError(err)
	}
	return pi.ClientSecret, nil
}

func wrapStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		msg := se.Msg
		if msg == "" {
			msg = string(se.Code)
		}
		return &ProviderError{Status: se.HTTPStatusCode, Message: msg, Err: err}
	}
	return &ProviderError{Message: fmt.Sprintf("payment provider unreachable: %v", err), Err: err}
}
