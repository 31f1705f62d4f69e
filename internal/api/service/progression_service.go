package service

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"ctchen222/Chord-Dictionary/internal/security"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultPublicLimit = 20
	MaxPublicLimit     = 100
)

// ProgressionService defines the business logic for saved progressions.
type ProgressionService interface {
	Create(ctx context.Context, userID int64, name string, chords []string, isPublic bool) (int64, error)
	Update(ctx context.Context, id, userID int64, name string, chords []string, isPublic bool) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id int64, requesterID *int64) (*models.Progression, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Progression, error)
	ListPublic(ctx context.Context, limit, offset int) ([]models.Progression, error)
}

type progressionService struct {
	repo   repository.ProgressionRepository
	now    func() time.Time
	writes metric.Int64Counter
}

// NewProgressionService creates a new ProgressionService.
func NewProgressionService(repo repository.ProgressionRepository) ProgressionService {
	return &progressionService{
		repo:   repo,
		now:    time.Now,
		writes: newCounter("progressions.writes", "Progression writes by operation"),
	}
}

func (s *progressionService) Create(ctx context.Context, userID int64, name string, chords []string, isPublic bool) (int64, error) {
	ctx, span := tracer.Start(ctx, "ProgressionService.Create")
	defer span.End()

	p, err := s.build(userID, name, chords, isPublic)
	if err != nil {
		return 0, err
	}
	p.CreatedAt = p.UpdatedAt

	if err := s.repo.Create(ctx, p); err != nil {
		return 0, apperr.Persistence("save progression", err)
	}

	s.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "create")))
	slog.InfoContext(ctx, "Progression saved", "progression.id", p.ID, "user.id", userID)
	return p.ID, nil
}

// Update rewrites a progression owned by userID. Missing and foreign rows both
// yield ErrNotFoundOrForbidden.
func (s *progressionService) Update(ctx context.Context, id, userID int64, name string, chords []string, isPublic bool) error {
	ctx, span := tracer.Start(ctx, "ProgressionService.Update")
	defer span.End()

	p, err := s.build(userID, name, chords, isPublic)
	if err != nil {
		return err
	}
	p.ID = id

	matched, err := s.repo.Update(ctx, p)
	if err != nil {
		return apperr.Persistence("update progression", err)
	}
	if !matched {
		return apperr.ErrNotFoundOrForbidden
	}

	s.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "update")))
	return nil
}

func (s *progressionService) Delete(ctx context.Context, id, userID int64) error {
	ctx, span := tracer.Start(ctx, "ProgressionService.Delete")
	defer span.End()

	matched, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return apperr.Persistence("delete progression", err)
	}
	if !matched {
		return apperr.ErrNotFoundOrForbidden
	}

	s.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "delete")))
	return nil
}

// GetByID returns a progression visible to requesterID (nil for anonymous).
func (s *progressionService) GetByID(ctx context.Context, id int64, requesterID *int64) (*models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionService.GetByID")
	defer span.End()

	p, err := s.repo.GetVisible(ctx, id, requesterID)
	if err != nil {
		return nil, apperr.Persistence("retrieve progression", err)
	}
	if p == nil {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	return p, nil
}

func (s *progressionService) ListForUser(ctx context.Context, userID int64) ([]models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionService.ListForUser")
	defer span.End()

	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("retrieve progressions", err)
	}
	return list, nil
}

// ListPublic pages through public progressions. limit is clamped to
// [1, MaxPublicLimit] with DefaultPublicLimit for non-positive values.
func (s *progressionService) ListPublic(ctx context.Context, limit, offset int) ([]models.Progression, error) {
	ctx, span := tracer.Start(ctx, "ProgressionService.ListPublic")
	defer span.End()

	switch {
	case limit <= 0:
		limit = DefaultPublicLimit
	case limit > MaxPublicLimit:
		limit = MaxPublicLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Persistence("retrieve public progressions", err)
	}
	return list, nil
}

func (s *progressionService) build(userID int64, name string, chords []string, isPublic bool) (*models.Progression, error) {
	name = security.SanitizeInput(name)
	if name == "" {
		return nil, apperr.Validation("Invalid input. Name and chords array are required.")
	}
	if chords == nil {
		return nil, apperr.Validation("Invalid input. Name and chords array are required.")
	}

	cleaned := make(models.Chords, len(chords))
	for i, c := range chords {
		cleaned[i] = strings.TrimSpace(c)
	}

	return &models.Progression{
		UserID:    userID,
		Name:      name,
		Chords:    cleaned,
		IsPublic:  isPublic,
		UpdatedAt: s.now().UTC(),
	}, nil
}
