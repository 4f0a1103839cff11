package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-console/internal/projects/domain"
	"github.com/GoSim-25-26J-441/projects-console/internal/projects/repository"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	repo repository.Repository
	log  *zap.Logger
}

// NewProjectService creates a new project service. A nil logger disables logging.
func NewProjectService(repo repository.Repository, log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{
		repo: repo,
		log:  log.Named("projects"),
	}
}

// Create stores a new project and returns it with its assigned id
func (s *ProjectService) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.log.Warn("create failed", zap.Error(err))
		return nil, err
	}
	s.log.Debug("project created", zap.Int("project_id", created.ID))
	return created, nil
}

// ListAll returns all projects in store order
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Warn("list failed", zap.Error(err))
		return nil, err
	}
	s.log.Debug("projects listed", zap.Int("count", len(items)))
	return items, nil
}

// FetchByID returns a project or domain.ErrNotFound
func (s *ProjectService) FetchByID(ctx context.Context, id int) (*domain.Project, error) {
	p, err := s.repo.FetchByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Debug("project not found", zap.Int("project_id", id))
		return nil, domain.ErrNotFound
	case err != nil:
		s.log.Warn("fetch failed", zap.Int("project_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Update replaces the stored fields of an existing project
func (s *ProjectService) Update(ctx context.Context, p domain.Project) error {
	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Warn("update failed", zap.Int("project_id", p.ID), zap.Error(err))
		return err
	}
	s.log.Debug("project updated", zap.Int("project_id", p.ID))
	return nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Warn("delete failed", zap.Int("project_id", id), zap.Error(err))
		return err
	}
	s.log.Debug("project deleted", zap.Int("project_id", id))
	return nil
}
