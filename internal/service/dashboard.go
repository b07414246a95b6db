package service

import (
	"context"
	"fmt"

	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

// Dashboard computes the KPIs over the whole collection and lists the permits
// matching filter.
func (s *Service) Dashboard(ctx context.Context, filter entity.PermitFilter) (entity.Dashboard, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return entity.Dashboard{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	today := s.Today()
	permits := compliance.FilterPermits(snapshot.Permits, filter)

	return entity.Dashboard{
		Today:   entity.FormatDate(today),
		KPIs:    compliance.KPIs(snapshot.Permits, snapshot.Conditions, today),
		Filter:  filter,
		Permits: permits,
		Options: compliance.FilterOptions(snapshot.Permits),
		Empty:   len(permits) == 0,
	}, nil
}

func (s *Service) Milestones(ctx context.Context) ([]entity.Milestone, error) {
	milestones, err := s.repo.Milestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestones: %w", err)
	}

	return milestones, nil
}
