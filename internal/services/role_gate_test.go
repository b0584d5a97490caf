package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestRoleGate_RequireAdmin(t *testing.T) {
	ctx := context.Background()
	storeDown := errors.Join(ErrStoreUnavailable, errors.New("connection refused"))

	tests := []struct {
		name    string
		user    *models.User
		err     error
		wantErr error
	}{
		{"admin passes", &models.User{Email: "a@x.com", Role: models.RoleAdmin}, nil, nil},
		{"member is forbidden", &models.User{Email: "a@x.com", Role: models.RoleMember}, nil, ErrForbidden},
		{"role must match exactly", &models.User{Email: "a@x.com", Role: "Admin"}, nil, ErrForbidden},
		{"empty role is forbidden", &models.User{Email: "a@x.com"}, nil, ErrForbidden},
		{"unknown user is forbidden", nil, ErrNotFound, ErrForbidden},
		{"store failure propagates", nil, storeDown, ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(mockUserFinder)
			finder.On("GetByEmail", ctx, "a@x.com").Return(tt.user, tt.err)

			err := NewRoleGate(finder).RequireAdmin(ctx, "a@x.com")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			finder.AssertExpectations(t)
		})
	}
}

func TestRoleGate_EmptyEmailSkipsLookup(t *testing.T) {
	finder := new(mockUserFinder)

	err := NewRoleGate(finder).RequireAdmin(context.Background(), "")
	assert.ErrorIs(t, err, ErrForbidden)
	finder.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
