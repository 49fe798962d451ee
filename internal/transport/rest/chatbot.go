package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gramseva/gramseva-backend/internal/chatbot"
	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/internal/service/chat"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// chatService defines the minimal interface needed by ChatHandler.
type chatService interface {
	Message(ctx context.Context, citizenID *uuid.UUID, input chat.MessageInput) (string, error)
	History(ctx context.Context, citizenID uuid.UUID, limit int) ([]domain.ChatLog, error)
}

// ChatHandler serves the assistant endpoints. Message works for
// anonymous callers too; only logged-in exchanges are recorded.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chatbot")}
}

type chatMessageRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id"`
	Language  string         `json:"language"`
	History   []chatbot.Turn `json:"history"`
}

// Message answers a chat message.
// POST /api/chatbot/message
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var citizenID *uuid.UUID
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		citizenID = &id
	}

	reply, err := h.svc.Message(r.Context(), citizenID, chat.MessageInput{
		Message:   req.Message,
		SessionID: req.SessionID,
		Language:  req.Language,
		History:   req.History,
	})
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"reply": reply})
}

// History returns the caller's recent chat exchanges, oldest first.
// GET /api/chatbot/history
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	citizenID, _ := ctxutil.UserIDFromCtx(r.Context())
	limit, _ := pagination(r)

	list, err := h.svc.History(r.Context(), citizenID, limit)
	if err != nil {
		writeDomainError(r.Context(), h.log, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"history": toChatLogDTOs(list)})
}
