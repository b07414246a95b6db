package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/internal/service"
)

type Service interface {
	SubmitEvidence(ctx context.Context, sub service.EvidenceSubmission) (entity.Evidence, error)
}

type EventHandler struct {
	s Service
}

func NewEventHandler(s Service) *EventHandler {
	return &EventHandler{s: s}
}

// OnEvidenceSubmitted records evidence uploaded through another system.
// Submissions for unknown conditions or without a file name are dropped.
func (h *EventHandler) OnEvidenceSubmitted(ctx context.Context, msg kafka.Message) error {
	var event service.EvidenceSubmission

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	e, err := h.s.SubmitEvidence(ctx, event)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrIncorrectRequestBody) {
			slog.WarnContext(ctx, "evidence submission dropped", "condition_id", event.ConditionID, "error", err)
			return nil
		}

		return fmt.Errorf("submit evidence: %w", err)
	}

	slog.InfoContext(ctx, "evidence submitted", "evidence_id", e.ID, "condition_id", e.ConditionID)

	return nil
}
