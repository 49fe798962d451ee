package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gramseva/gramseva-backend/internal/chatbot"
	"github.com/gramseva/gramseva-backend/internal/domain"
)

type logRepoMock struct {
	InsertChatLogFunc func(ctx context.Context, l *domain.ChatLog) error
	ListChatLogsFunc  func(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error)
}

func (m *logRepoMock) InsertChatLog(ctx context.Context, l *domain.ChatLog) error {
	return m.InsertChatLogFunc(ctx, l)
}

func (m *logRepoMock) ListChatLogs(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error) {
	return m.ListChatLogsFunc(ctx, citizenID, limit)
}

type clientMock struct {
	CompleteFunc func(ctx context.Context, message string, history []chatbot.Turn) (string, error)
}

func (m *clientMock) Complete(ctx context.Context, message string, history []chatbot.Turn) (string, error) {
	return m.CompleteFunc(ctx, message, history)
}

func TestService_Message_UsesClient(t *testing.T) {
	t.Parallel()

	client := &clientMock{
		CompleteFunc: func(ctx context.Context, message string, history []chatbot.Turn) (string, error) {
			return "assistant reply", nil
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), client, &logRepoMock{})

	reply, err := svc.Message(context.Background(), nil, MessageInput{Message: "hello"})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if reply != "assistant reply" {
		t.Errorf("reply = %q", reply)
	}
}

func TestService_Message_FallsBackOnClientError(t *testing.T) {
	t.Parallel()

	client := &clientMock{
		CompleteFunc: func(ctx context.Context, message string, history []chatbot.Turn) (string, error) {
			return "", errors.New("api unreachable")
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), client, &logRepoMock{})

	reply, err := svc.Message(context.Background(), nil, MessageInput{Message: "birth certificate"})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if !strings.Contains(reply, "Birth Certificate") {
		t.Errorf("reply = %q, want the local responder's answer", reply)
	}
}

func TestService_Message_NoClientUsesFallback(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.New(slog.DiscardHandler), nil, &logRepoMock{})

	reply, err := svc.Message(context.Background(), nil, MessageInput{Message: "namaste"})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if !strings.Contains(reply, "Welcome") {
		t.Errorf("reply = %q", reply)
	}
}

func TestService_Message_LogsForCitizens(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	var logged *domain.ChatLog
	logs := &logRepoMock{
		InsertChatLogFunc: func(ctx context.Context, l *domain.ChatLog) error {
			logged = l
			return nil
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), nil, logs)

	if _, err := svc.Message(context.Background(), &citizenID, MessageInput{Message: "help", SessionID: "s-1", Language: "mr"}); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if logged == nil {
		t.Fatal("exchange must be logged for a logged-in citizen")
	}
	if *logged.CitizenID != citizenID || logged.SessionID != "s-1" || logged.Language != "mr" {
		t.Errorf("log = %+v", logged)
	}
	if logged.BotResponse == "" {
		t.Error("bot response must be logged")
	}
}

func TestService_Message_LogFailureDoesNotFailReply(t *testing.T) {
	t.Parallel()

	citizenID := uuid.New()
	logs := &logRepoMock{
		InsertChatLogFunc: func(ctx context.Context, l *domain.ChatLog) error {
			return errors.New("insert failed")
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), nil, logs)

	reply, err := svc.Message(context.Background(), &citizenID, MessageInput{Message: "help"})
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if reply == "" {
		t.Error("reply must be produced even when the log write fails")
	}
}

func TestService_Message_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.New(slog.DiscardHandler), nil, &logRepoMock{})

	if _, err := svc.Message(context.Background(), nil, MessageInput{Message: ""}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestService_History_ClampsLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	logs := &logRepoMock{
		ListChatLogsFunc: func(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), nil, logs)

	if _, err := svc.History(context.Background(), uuid.New(), 500); err != nil {
		t.Fatalf("History: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want clamped to 50", gotLimit)
	}
}
