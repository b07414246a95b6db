package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samandr77/microservices/compliance/internal/assistant"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

const sourceAssistant = "assistant"

// Ask sends message to the provider with the current records as context and
// appends the reply to the session transcript. Provider failures are
// answered with the apology, never returned.
func (s *Service) Ask(ctx context.Context, session, message string) (entity.ChatReply, error) {
	conv := s.sessions.Get(session)

	history, err := conv.Begin(message)
	if err != nil {
		return entity.ChatReply{}, err
	}

	ended := false

	defer func() {
		if !ended {
			conv.End(assistant.Apology)
		}
	}()

	text, err := s.generate(ctx, history, message)
	if err != nil {
		slog.ErrorContext(ctx, "assistant request failed", "session", assistant.SessionID(session), "error", err)
		s.record(ctx, entity.ActivityError, sourceAssistant, "AI request failed: %v", err)
	}

	s.metrics.AssistantRequest(err != nil)

	reply, failed := assistant.Reply(text, err)
	msg := conv.End(reply)
	ended = true

	return entity.ChatReply{
		Message: msg,
		Lines:   assistant.FormatReply(msg.Content),
		Failed:  failed,
	}, nil
}

func (s *Service) generate(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	if s.provider == nil {
		return "", errors.New("no completion provider configured")
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load snapshot: %w", err)
	}

	instruction, err := assistant.BuildSystemInstruction(assistant.Context{
		Permits:    snapshot.Permits,
		Conditions: snapshot.Conditions,
		Today:      s.Today(),
		MaxBytes:   s.cfg.ContextMaxBytes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build system instruction: %w", err)
	}

	if s.cfg.AITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AITimeout)

		defer cancel()
	}

	return s.provider.Generate(ctx, entity.ChatRequest{
		SystemInstruction: instruction,
		History:           history,
		Message:           message,
	})
}

// Transcript of a session that never asked anything is the greeting alone.
func (s *Service) Transcript(_ context.Context, session string) entity.Transcript {
	conv, ok := s.sessions.Lookup(session)
	if !ok {
		conv = assistant.NewConversation()
	}

	return conv.Transcript(assistant.SessionID(session))
}

func (s *Service) ResetConversation(_ context.Context, session string) error {
	conv, ok := s.sessions.Lookup(session)
	if !ok {
		return nil
	}

	return conv.Reset()
}

func (s *Service) Suggestions(_ context.Context) []string {
	return assistant.Suggestions()
}
