package repository

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProgressionRepository defines the data operations on saved progressions.
// Update and Delete are scoped to the owner and report whether a row matched.
type ProgressionRepository interface {
	Create(ctx context.Context, p *models.Progression) error
	Update(ctx context.Context, p *models.Progression) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	GetVisible(ctx context.Context, id int64, requesterID *int64) (*models.Progression, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Progression, error)
	ListPublic(ctx context.Context, limit, offset int) ([]models.Progression, error)
}

type sqlProgressionRepository struct {
	db *sqlx.DB
}

// NewProgressionRepository creates a new SQL-backed ProgressionRepository.
func NewProgressionRepository(db *sqlx.DB) ProgressionRepository {
	return &sqlProgressionRepository{db: db}
}

const progressionColumns = `p.id, p.user_id, p.name, p.chords, p.is_public, p.created_at, p.updated_at`

func (r *sqlProgressionRepository) Create(ctx context.Context, p *models.Progression) error {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.Create")
	defer span.End()

	query := r.db.Rebind(`INSERT INTO saved_progressions (user_id, name, chords, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	err := r.db.GetContext(ctx, &p.ID, query, p.UserID, p.Name, p.Chords, p.IsPublic, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert progression: %w", err)
	}
	return nil
}

func (r *sqlProgressionRepository) Update(ctx context.Context, p *models.Progression) (bool, error) {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.Update")
	defer span.End()

	query := r.db.Rebind(`UPDATE saved_progressions SET name = ?, chords = ?, is_public = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Chords, p.IsPublic, p.UpdatedAt.UTC(), p.ID, p.UserID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to update progression: %w", err)
	}
	return affected(res)
}

func (r *sqlProgressionRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.Delete")
	defer span.End()

	query := r.db.Rebind(`DELETE FROM saved_progressions WHERE id = ? AND user_id = ?`)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to delete progression: %w", err)
	}
	return affected(res)
}

// GetVisible returns the progression if it is public or owned by requesterID.
// A nil requester only sees public progressions. Invisible and missing rows are both (nil, nil).
func (r *sqlProgressionRepository) GetVisible(ctx context.Context, id int64, requesterID *int64) (*models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.GetVisible")
	defer span.End()

	var (
		p     models.Progression
		query string
		args  []any
	)
	if requesterID != nil {
		query = `SELECT ` + progressionColumns + `, u.username AS created_by
			FROM saved_progressions p JOIN users u ON u.id = p.user_id
			WHERE p.id = ? AND (p.user_id = ? OR p.is_public = ?)`
		args = []any{id, *requesterID, true}
	} else {
		query = `SELECT ` + progressionColumns + `, u.username AS created_by
			FROM saved_progressions p JOIN users u ON u.id = p.user_id
			WHERE p.id = ? AND p.is_public = ?`
		args = []any{id, true}
	}

	if err := r.db.GetContext(ctx, &p, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progression: %w", err)
	}
	return &p, nil
}

// ListByUser returns the user's progressions, most recently updated first.
func (r *sqlProgressionRepository) ListByUser(ctx context.Context, userID int64) ([]models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.ListByUser")
	defer span.End()

	progressions := []models.Progression{}
	query := r.db.Rebind(`SELECT ` + progressionColumns + ` FROM saved_progressions p
		WHERE p.user_id = ? ORDER BY p.updated_at DESC, p.id DESC`)
	if err := r.db.SelectContext(ctx, &progressions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list progressions: %w", err)
	}
	return progressions, nil
}

// ListPublic returns a page of public progressions with their owner's username.
func (r *sqlProgressionRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionRepository.ListPublic")
	defer span.End()

	progressions := []models.Progression{}
	query := r.db.Rebind(`SELECT ` + progressionColumns + `, u.username AS created_by
		FROM saved_progressions p JOIN users u ON u.id = p.user_id
		WHERE p.is_public = ?
		ORDER BY p.updated_at DESC, p.id DESC
		LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &progressions, query, true, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list public progressions: %w", err)
	}
	return progressions, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
