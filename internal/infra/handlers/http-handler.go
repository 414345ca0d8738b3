package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"converse-backend/internal/domain/dto"
	Irepository "converse-backend/internal/domain/interfaces/repository"
	Iservices "converse-backend/internal/domain/interfaces/services"
	"converse-backend/internal/infra/logger"
	"converse-backend/internal/infra/repository"
)

const sessionCookieName = "session_id"

type HttpHandlers struct {
	Logger        *logger.Logger
	ChatService   Iservices.IChatService
	Settings      Irepository.SettingsRepository
	Conversations Irepository.ConversationRepository
	SessionScoped bool
	Template      *template.Template
}

func NewHttpHandlers(logger *logger.Logger, chatService Iservices.IChatService, settings Irepository.SettingsRepository, conversations Irepository.ConversationRepository, sessionScoped bool, tmpl *template.Template) *HttpHandlers {
	return &HttpHandlers{
		Logger:        logger,
		ChatService:   chatService,
		Settings:      settings,
		Conversations: conversations,
		SessionScoped: sessionScoped,
		Template:      tmpl,
	}
}

// Index renders the landing page. In the session variant a page load starts
// the visitor over, so their conversation is cleared.
func (th *HttpHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if th.SessionScoped {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			th.Conversations.Clear(cookie.Value)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := th.Template.Execute(w, nil); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to render landing page: %v", err))
	}
}

func (th *HttpHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var chatRequest dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatRequest); err != nil {
		th.Logger.Error(fmt.Sprintf("Invalid JSON payload: %v", err))
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(chatRequest.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "prompt is required"})
		return
	}

	conversationID := th.resolveConversationID(w, r)

	response, err := th.ChatService.HandleChat(r.Context(), conversationID, chatRequest.Prompt)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Chat request failed for conversation %s: %v", conversationID, err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (th *HttpHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var patch dto.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		th.Logger.Error(fmt.Sprintf("Invalid JSON payload: %v", err))
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if _, err := th.Settings.Merge(patch); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "Settings updated"})
}

func (th *HttpHandlers) History(w http.ResponseWriter, r *http.Request) {
	conversationID := th.resolveConversationID(w, r)
	writeJSON(w, http.StatusOK, th.Conversations.Snapshot(conversationID))
}

// resolveConversationID maps the request to its conversation: the session
// cookie, minted on first use, when session isolation is on, otherwise the
// single process-wide conversation.
func (th *HttpHandlers) resolveConversationID(w http.ResponseWriter, r *http.Request) string {
	if !th.SessionScoped {
		return repository.GlobalConversationID
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
