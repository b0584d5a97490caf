package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
)

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleGate restricts operations to users whose stored role is admin. The email
// must come from a verified token.
type RoleGate struct {
	users UserFinder
}

func NewRoleGate(users UserFinder) *RoleGate {
	return &RoleGate{users: users}
}

func (g *RoleGate) RequireAdmin(ctx context.Context, email string) error {
	if email == "" {
		return ErrForbidden
	}
	user, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if user.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
