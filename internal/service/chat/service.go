// Package chat implements the citizen assistant endpoint.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/chatbot"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

// logRepo stores chat exchanges for logged-in citizens.
type logRepo interface {
	InsertChatLog(ctx context.Context, l *domain.ChatLog) error
	ListChatLogs(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error)
}

// Service answers citizen messages, preferring the external assistant
// and falling back to the local keyword responder on any failure.
type Service struct {
	log    *slog.Logger
	client chatbot.Client
	logs   logRepo
}

// NewService creates a new chat service instance. A nil client means
// only the local responder is used.
func NewService(logger *slog.Logger, client chatbot.Client, logs logRepo) *Service {
	return &Service{
		log:    logger.With("service", "chat"),
		client: client,
		logs:   logs,
	}
}

// MessageInput holds one incoming chat message.
type MessageInput struct {
	Message   string
	SessionID string
	Language  string
	History   []chatbot.Turn
}

// Validate validates the message input.
func (i MessageInput) Validate() error {
	var errs []domain.FieldError

	if i.Message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if len(i.Message) > 2000 {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Message produces a reply. The exchange is logged best-effort when the
// caller is a logged-in citizen; a failed log write never fails the
// reply.
func (s *Service) Message(ctx context.Context, citizenID *uuid.UUID, input MessageInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	reply := s.reply(ctx, input)

	if citizenID != nil {
		sessionID := input.SessionID
		if sessionID == "" {
			sessionID = "anonymous"
		}
		language := input.Language
		if language == "" {
			language = "en"
		}
		err := s.logs.InsertChatLog(ctx, &domain.ChatLog{
			CitizenID:   citizenID,
			SessionID:   sessionID,
			UserMessage: input.Message,
			BotResponse: reply,
			Language:    language,
		})
		if err != nil {
			s.log.WarnContext(ctx, "chat log dropped", "error", err)
		}
	}

	return reply, nil
}

func (s *Service) reply(ctx context.Context, input MessageInput) string {
	if s.client == nil {
		return chatbot.FallbackReply(input.Message)
	}
	reply, err := s.client.Complete(ctx, input.Message, input.History)
	if err != nil {
		s.log.WarnContext(ctx, "assistant unavailable, using local responder", "error", err)
		return chatbot.FallbackReply(input.Message)
	}
	return reply
}

// History returns up to limit of the citizen's logged exchanges, oldest
// first.
func (s *Service) History(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	logs, err := s.logs.ListChatLogs(ctx, citizenID, limit)
	if err != nil {
		return nil, fmt.Errorf("chat.History: %w", err)
	}
	return logs, nil
}
