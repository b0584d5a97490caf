package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxChargePrice keeps the cents amount well inside int64.
const MaxChargePrice = 999999.99

var ErrInvalidAmount = errors.New("price must be a positive amount up to 999999.99")

// ChargeProvider creates card charge intents with an external processor.
type ChargeProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

type PaymentService struct {
	db       *gorm.DB
	provider ChargeProvider
	now      func() time.Time
}

func NewPaymentService(db *gorm.DB, provider ChargeProvider) *PaymentService {
	return &PaymentService{db: db, provider: provider, now: time.Now}
}

// AmountInCents converts a decimal price to minor units. price must not
// exceed MaxChargePrice.
func AmountInCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *PaymentService) CreateChargeIntent(ctx context.Context, price float64) (string, error) {
	if !(price > 0 && price <= MaxChargePrice) {
		return "", ErrInvalidAmount
	}
	amount := AmountInCents(price)
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	secret, err := s.provider.CreateIntent(ctx, amount, "usd")
	if err != nil {
		return "", err
	}
	return secret, nil
}

// RecordPayment appends a payment stamped with the server time.
func (s *PaymentService) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.InsertResult, error) {
	payment := models.Payment{
		ID:            uuid.New(),
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		PlanName:      req.PlanName,
		Date:          s.now().UTC(),
	}
	if len(req.Details) > 0 && string(req.Details) != "null" {
		payment.Details = datatypes.JSON(req.Details)
	}

	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, storeErr("record payment", err)
	}
	return &dto.InsertResult{Acknowledged: true, InsertedID: payment.ID}, nil
}

func (s *PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := s.db.WithContext(ctx).Scopes(newestFirst).Find(&payments).Error; err != nil {
		return nil, storeErr("list payments", err)
	}
	return payments, nil
}

func (s *PaymentService) ListByOwner(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := s.db.WithContext(ctx).
		Scopes(ownedBy(email), newestFirst).
		Find(&payments).Error
	if err != nil {
		return nil, storeErr(fmt.Sprintf("list payments of %s", email), err)
	}
	return payments, nil
}
