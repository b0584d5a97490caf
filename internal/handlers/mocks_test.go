package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const testSecret = "test-secret"

type mockUsers struct{ mock.Mock }

func (m *mockUsers) RegisterIfAbsent(ctx context.Context, req *dto.RegisterUserRequest) (*dto.InsertResult, bool, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.InsertResult)
	return res, args.Bool(1), args.Error(2)
}

func (m *mockUsers) ListAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockUsers) DeleteByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.DeleteResult)
	return res, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUsers) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UpdateResult, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.UpdateResult)
	return res, args.Error(1)
}

func (m *mockUsers) CheckAdmin(ctx context.Context, callerEmail, email string) (bool, error) {
	args := m.Called(ctx, callerEmail, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) PromoteToAdmin(ctx context.Context, id uuid.UUID) (*dto.UpdateResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.UpdateResult)
	return res, args.Error(1)
}

func (m *mockUsers) MarkSubscriptionPaid(ctx context.Context, email string) (*dto.UpdateResult, error) {
	args := m.Called(ctx, email)
	res, _ := args.Get(0).(*dto.UpdateResult)
	return res, args.Error(1)
}

type mockList struct{ mock.Mock }

func (m *mockList) Add(ctx context.Context, email, movieID string, movie datatypes.JSON) (*dto.InsertResult, bool, error) {
	args := m.Called(ctx, email, movieID, movie)
	res, _ := args.Get(0).(*dto.InsertResult)
	return res, args.Bool(1), args.Error(2)
}

func (m *mockList) ListByOwner(ctx context.Context, email string) ([]models.ListEntry, error) {
	args := m.Called(ctx, email)
	entries, _ := args.Get(0).([]models.ListEntry)
	return entries, args.Error(1)
}

func (m *mockList) RemoveByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.DeleteResult)
	return res, args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]models.SubscriptionPlan)
	return plans, args.Error(1)
}

func (m *mockCatalog) GetPlan(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*models.SubscriptionPlan)
	return plan, args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) CreateChargeIntent(ctx context.Context, price float64) (string, error) {
	args := m.Called(ctx, price)
	return args.String(0), args.Error(1)
}

func (m *mockPayments) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.InsertResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.InsertResult)
	return res, args.Error(1)
}

func (m *mockPayments) ListAll(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *mockPayments) ListByOwner(ctx context.Context, email string) ([]models.Payment, error) {
	args := m.Called(ctx, email)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func guard() fiber.Handler {
	return middleware.JWTProtected(services.NewTokenService(testSecret))
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := services.NewTokenService(testSecret).Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return "Bearer " + token
}

type call struct {
	method string
	path   string
	body   string
	auth   string
}

func do(t *testing.T, app *fiber.App, c call) (int, []byte) {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decodeErr(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}
