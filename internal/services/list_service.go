package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidMovie = errors.New("movie document needs an email and an id")

// ListService manages one per-owner movie list (favorites, watch-later).
type ListService struct {
	db    *gorm.DB
	table string
}

func NewListService(db *gorm.DB, table string) *ListService {
	return &ListService{db: db, table: table}
}

// Add stores the movie unless the owner already has it. existing is true
// when nothing was inserted.
func (s *ListService) Add(ctx context.Context, email, movieID string, movie datatypes.JSON) (result *dto.InsertResult, existing bool, err error) {
	var count int64
	err = s.db.WithContext(ctx).Table(s.table).
		Scopes(ownedBy(email)).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	if err != nil {
		return nil, false, storeErr("lookup "+s.table, err)
	}
	if count > 0 {
		return nil, true, nil
	}

	entry := models.ListEntry{
		ID:      uuid.New(),
		Email:   email,
		MovieID: movieID,
		Movie:   movie,
	}
	if err := s.db.WithContext(ctx).Table(s.table).Create(&entry).Error; err != nil {
		return nil, false, storeErr("insert "+s.table, err)
	}
	return &dto.InsertResult{Acknowledged: true, InsertedID: entry.ID}, false, nil
}

func (s *ListService) ListByOwner(ctx context.Context, email string) ([]models.ListEntry, error) {
	entries := []models.ListEntry{}
	err := s.db.WithContext(ctx).Table(s.table).
		Scopes(ownedBy(email)).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("list "+s.table, err)
	}
	return entries, nil
}

func (s *ListService) RemoveByID(ctx context.Context, id uuid.UUID) (*dto.DeleteResult, error) {
	res := s.db.WithContext(ctx).Table(s.table).Where("id = ?", id).Delete(&models.ListEntry{})
	if res.Error != nil {
		return nil, storeErr("delete "+s.table, res.Error)
	}
	return &dto.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

// ParseMovie pulls the owner email and movie id out of a posted movie
// document. Numeric ids keep their literal form, so 550 and "550" match.
func ParseMovie(body []byte) (email, movieID string, movie datatypes.JSON, err error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrInvalidMovie, err)
	}
	if dec.More() {
		return "", "", nil, fmt.Errorf("%w: trailing data", ErrInvalidMovie)
	}

	email, _ = doc["email"].(string)
	switch v := doc["id"].(type) {
	case string:
		movieID = v
	case json.Number:
		movieID = v.String()
	}
	email = strings.TrimSpace(email)
	movieID = strings.TrimSpace(movieID)
	if email == "" || movieID == "" {
		return "", "", nil, ErrInvalidMovie
	}
	return email, movieID, datatypes.JSON(append([]byte(nil), body...)), nil
}
