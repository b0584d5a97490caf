package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ListEntry joins an owner to a movie. Favorites and watch-later share the
// shape and live in separate tables, so the table is always picked by the caller.
type ListEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string         `gorm:"not null;size:255"`
	MovieID   string         `gorm:"not null;size:100"`
	Movie     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time
}

// MarshalJSON returns the movie document as it was posted, plus the entry id.
func (e ListEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})
	if len(e.Movie) > 0 {
		if err := json.Unmarshal(e.Movie, &out); err != nil {
			out = map[string]interface{}{"movie": json.RawMessage(e.Movie)}
		}
	}
	if out == nil {
		out = make(map[string]interface{})
	}
	out["_id"] = e.ID
	if _, ok := out["email"]; !ok {
		out["email"] = e.Email
	}
	if _, ok := out["id"]; !ok {
		out["id"] = e.MovieID
	}
	out["createdAt"] = e.CreatedAt
	return json.Marshal(out)
}
