package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

const sourceConditions = "conditions"

func (s *Service) ListConditions(ctx context.Context, status string) ([]entity.Condition, error) {
	conditions, err := s.repo.Conditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conditions: %w", err)
	}

	return compliance.FilterConditions(conditions, status), nil
}

func (s *Service) Condition(ctx context.Context, id string) (entity.Condition, error) {
	c, err := s.repo.ConditionByID(ctx, id)
	if err != nil {
		return entity.Condition{}, fmt.Errorf("failed to get condition %s: %w", id, err)
	}

	return c, nil
}

// CreateCondition builds the condition from draft. A draft without a permit is
// attached to the first permit of the collection.
func (s *Service) CreateCondition(ctx context.Context, draft entity.ConditionDraft) (entity.Condition, error) {
	err := draft.Validate()
	if err != nil {
		return entity.Condition{}, err
	}

	permits, err := s.repo.Permits(ctx)
	if err != nil {
		return entity.Condition{}, fmt.Errorf("failed to get permits: %w", err)
	}

	defaultPermitID := ""
	if len(permits) > 0 {
		defaultPermitID = permits[0].ID
	}

	c, err := draft.Build(entity.NewConditionID(), defaultPermitID, s.Today())
	if err != nil {
		return entity.Condition{}, err
	}

	if c.PermitID == "" {
		return entity.Condition{}, fmt.Errorf("%w: no permit to attach the condition to", entity.ErrIncorrectRequestBody)
	}

	err = s.repo.CreateCondition(ctx, c)
	if err != nil {
		return entity.Condition{}, fmt.Errorf("failed to create condition: %w", err)
	}

	slog.InfoContext(ctx, "condition created", "condition_id", c.ID, "permit_id", c.PermitID)
	s.record(ctx, entity.ActivitySuccess, sourceConditions, "Condition %s added to permit %s", c.ID, c.PermitID)
	s.publish(ctx, entity.EventConditionCreated, c.ID)

	return c, nil
}

// UpdateCondition replaces the condition. The evidence flag is owned by
// uploads and keeps its stored value.
func (s *Service) UpdateCondition(ctx context.Context, c entity.Condition) (entity.Condition, error) {
	err := ValidateCondition(c)
	if err != nil {
		return entity.Condition{}, err
	}

	err = s.repo.UpdateCondition(ctx, c)
	if err != nil {
		return entity.Condition{}, fmt.Errorf("failed to update condition %s: %w", c.ID, err)
	}

	updated, err := s.Condition(ctx, c.ID)
	if err != nil {
		return entity.Condition{}, err
	}

	s.record(ctx, entity.ActivityInfo, sourceConditions, "Condition %s updated", c.ID)
	s.publish(ctx, entity.EventConditionUpdated, c.ID)

	return updated, nil
}

func (s *Service) DeleteCondition(ctx context.Context, id string) error {
	err := s.repo.DeleteCondition(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete condition %s: %w", id, err)
	}

	s.record(ctx, entity.ActivityWarn, sourceConditions, "Condition %s deleted", id)
	s.publish(ctx, entity.EventConditionDeleted, id)

	return nil
}
