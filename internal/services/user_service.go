package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, now: time.Now}
}

// RegisterIfAbsent inserts a new member unless the email is already known.
// existing is true when nothing was inserted.
func (s *UserService) RegisterIfAbsent(ctx context.Context, req *dto.RegisterUserRequest) (result *dto.InsertResult, existing bool, err error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Scopes(ownedBy(req.Email)).Count(&count).Error; err != nil {
		return nil, false, storeErr("lookup user", err)
	}
	if count > 0 {
		return nil, true, nil
	}

	user := models.User{
		ID:                 uuid.New(),
		Email:              req.Email,
		Name:               req.Name,
		Address:            req.Address,
		Gender:             req.Gender,
		Phone:              req.Phone,
		Photo:              req.Photo,
		Role:               models.RoleMember,
		SubscriptionStatus: models.SubscriptionUnpaid,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, storeErr("create user", err)
	}
	return &dto.InsertResult{Acknowledged: true, InsertedID: user.ID}, false, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return nil, storeErr("delete user", res.Error)
	}
	return &dto.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, storeErr("get user", err)
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Scopes(ownedBy(email)).First(&user).Error; err != nil {
		return nil, storeErr("get user by email", err)
	}
	return &user, nil
}

// UpdateProfile sets only the allow-listed fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UpdateResult, error) {
	updates := map[string]interface{}{}
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIf("address", req.Address)
	setIf("email", req.Email)
	setIf("gender", req.Gender)
	setIf("name", req.Name)
	setIf("phone", req.Phone)
	setIf("photo", req.Photo)

	return s.update(ctx, "update profile", s.db.Where("id = ?", id), updates)
}

// CheckAdmin reports whether email belongs to an admin. It answers false when
// the caller asks about anyone but themselves.
func (s *UserService) CheckAdmin(ctx context.Context, callerEmail, email string) (bool, error) {
	if callerEmail != email {
		return false, nil
	}
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

func (s *UserService) PromoteToAdmin(ctx context.Context, id uuid.UUID) (*dto.UpdateResult, error) {
	return s.update(ctx, "promote user", s.db.Where("id = ?", id), map[string]interface{}{
		"role": models.RoleAdmin,
	})
}

func (s *UserService) MarkSubscriptionPaid(ctx context.Context, email string) (*dto.UpdateResult, error) {
	return s.update(ctx, "mark subscription paid", s.db.Scopes(ownedBy(email)), map[string]interface{}{
		"subscription_status": models.SubscriptionPaid,
		"subscription_date":   s.now().UTC(),
	})
}

// update applies updates to the first user matching scope and reports
// matched/modified counts. A row counts as modified only if a value changed.
func (s *UserService) update(ctx context.Context, op string, scope *gorm.DB, updates map[string]interface{}) (*dto.UpdateResult, error) {
	var user models.User
	err := scope.WithContext(ctx).Select("id").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return nil, storeErr(op, err)
	}
	if len(updates) == 0 {
		return &dto.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	}

	cond, args := changedAny(updates)
	updates["updated_at"] = s.now().UTC()
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Where(cond, args...).
		Updates(updates)
	if res.Error != nil {
		return nil, storeErr(op, res.Error)
	}
	return &dto.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: res.RowsAffected}, nil
}

// changedAny builds "a IS DISTINCT FROM ? OR b IS DISTINCT FROM ?" over the
// update columns.
func changedAny(updates map[string]interface{}) (string, []interface{}) {
	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	parts := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		parts[i] = col + " IS DISTINCT FROM ?"
		args[i] = updates[col]
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
