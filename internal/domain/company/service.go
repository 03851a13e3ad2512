package company

import (
	"context"

	"hingmart/internal/core/apperror"
	"hingmart/pkg/logger"
)

// Service exposes the company profile. A missing record is lazily replaced
// with defaults so callers always receive a usable profile.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("company-service")}
}

// Get returns the stored profile, seeding defaults on first access.
func (s *Service) Get(ctx context.Context) (*Company, error) {
	c, err := s.repo.Get(ctx)
	if err == nil {
		return c, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	c = Default()
	if saveErr := s.repo.Save(ctx, c); saveErr != nil {
		s.log.WithContext(ctx).Warnw("failed to seed default company", "error", saveErr)
	}
	return c, nil
}

// Update validates and replaces the profile, preserving the singleton id.
func (s *Service) Update(ctx context.Context, c *Company) (*Company, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := c.Clone()
	next.ID = current.ID
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("company profile updated", "company_name", next.CompanyName)
	return next, nil
}
