package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const sourceSettings = "settings"

func (s *Service) Profile(ctx context.Context) (entity.UserProfile, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return entity.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, p entity.UserProfile) (entity.UserProfile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return entity.UserProfile{}, fmt.Errorf("%w: name is required", entity.ErrIncorrectRequestBody)
	}

	err := s.repo.UpdateProfile(ctx, p)
	if err != nil {
		return entity.UserProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.record(ctx, entity.ActivityInfo, sourceSettings, "Profile of %s updated", p.Name)

	return p, nil
}

func (s *Service) AlertSettings(ctx context.Context) (entity.AlertSettings, error) {
	a, err := s.repo.AlertSettings(ctx)
	if err != nil {
		return entity.AlertSettings{}, fmt.Errorf("failed to get alert settings: %w", err)
	}

	return a, nil
}

// UpdateAlertSettings stores the settings. While alerts stay disabled the
// individual toggles cannot be changed.
func (s *Service) UpdateAlertSettings(ctx context.Context, a entity.AlertSettings) (entity.AlertSettings, error) {
	current, err := s.AlertSettings(ctx)
	if err != nil {
		return entity.AlertSettings{}, err
	}

	if !current.Enabled && !a.Enabled {
		a = current
	}

	err = s.repo.UpdateAlertSettings(ctx, a)
	if err != nil {
		return entity.AlertSettings{}, fmt.Errorf("failed to update alert settings: %w", err)
	}

	s.record(ctx, entity.ActivityInfo, sourceSettings, "Alert settings updated, enabled=%t", a.Enabled)

	return a, nil
}
