package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Chords is an ordered list of chord names, stored as JSON text.
type Chords []string

// Value implements driver.Valuer.
func (c Chords) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to encode chords: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Chords) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = Chords{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported chords column type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode chords: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*c = out
	return nil
}

// Progression is a named chord sequence saved by a user.
type Progression struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Chords    Chords    `db:"chords" json:"chords"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by,omitempty"`
}

// CreateProgressionRequest is the body of POST /api/progressions.
type CreateProgressionRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Chords   []string `json:"chords" binding:"required,max=64,dive,required,max=16"`
	IsPublic *bool    `json:"is_public"`
}

// UpdateProgressionRequest is the body of PUT /api/progressions.
type UpdateProgressionRequest struct {
	ID       int64    `json:"id" binding:"required,gt=0"`
	Name     string   `json:"name" binding:"required,max=100"`
	Chords   []string `json:"chords" binding:"required,max=64,dive,required,max=16"`
	IsPublic *bool    `json:"is_public"`
}

// ProgressionQuery holds the list parameters of GET /api/progressions.
// The id parameter is parsed by the controller so a bad id reads as not found.
type ProgressionQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Scope  string `form:"scope" binding:"omitempty,oneof=public mine"`
}

// Public resolves an optional visibility flag, defaulting to private.
func Public(flag *bool) bool {
	return flag != nil && *flag
}
