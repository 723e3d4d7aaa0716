package server

import (
	"encoding/json"
	"net/http"

	"github.com/TG-Note-App/tgauth/internal/archive"
	"github.com/TG-Note-App/tgauth/internal/initdata"
	"github.com/TG-Note-App/tgauth/internal/storage"
	"github.com/TG-Note-App/tgauth/internal/view"
)

const maxBodyBytes = 64 << 10

// authResponse is what the Mini-App bootstrapper renders.
type authResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
}

// validateRequest carries the raw init-data string.
type validateRequest struct {
	InitData string `json:"initData"`
}

// validateResponse is the full user profile.
type validateResponse struct {
	TelegramID      int64  `json:"telegramId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	LanguageCode    string `json:"languageCode"`
	IsPremium       bool   `json:"isPremium"`
	AllowsWriteToPM bool   `json:"allowsWriteToPm"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// displayTime is dd.MM.yyyy HH:mm.
const displayTime = "02.01.2006 15:04"

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	LoggerFrom(r.Context()).Debug("rendering index page")
	renderPage(w, r, http.StatusOK, view.IndexPage())
}

// authTelegram accepts the flattened init-data pairs posted by the bootstrapper.
func (s *Server) authTelegram(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context())

	var values initdata.Values
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&values); err != nil {
		logger.Warn("error decoding auth request", "error", err)
		writeError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}

	user, ok := s.authenticate(w, r, values)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, authResponse{
		ID:        user.TelegramID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
	})
}

// validate accepts {"initData": "<raw query string>"}.
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context())

	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("error decoding validate request", "error", err)
		writeError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.InitData == "" {
		logger.Warn("missing authentication data")
		writeError(w, r, http.StatusUnauthorized, "Missing authentication data")
		return
	}

	values, err := initdata.Parse(req.InitData)
	if err != nil {
		logger.Warn("failed to parse init data", "error", err)
		writeError(w, r, http.StatusUnauthorized, "Invalid authentication data")
		return
	}

	user, ok := s.authenticate(w, r, values)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, validateResponse{
		TelegramID:      user.TelegramID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Username:        user.Username,
		LanguageCode:    user.LanguageCode,
		IsPremium:       user.IsPremium,
		AllowsWriteToPM: user.AllowsWriteToPM,
		CreatedAt:       user.CreatedAt.Format(displayTime),
		UpdatedAt:       user.UpdatedAt.Format(displayTime),
	})
}

// authenticate verifies values, stores the user and archives the event. It
// writes the error response itself and reports false on failure.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, values initdata.Values) (*storage.User, bool) {
	ctx := r.Context()
	logger := LoggerFrom(ctx)

	if err := s.validator.Validate(values); err != nil {
		logger.Warn("invalid authentication data", "error", err)
		writeError(w, r, http.StatusUnauthorized, "Invalid authentication data")
		return nil, false
	}

	data, err := values.User()
	if err != nil {
		logger.Warn("cannot extract user data", "error", err)
		writeError(w, r, http.StatusUnauthorized, "Cannot extract user data")
		return nil, false
	}

	user, err := s.users.SaveOrUpdate(ctx, data)
	if err != nil {
		logger.Error("error saving user", "telegram_id", data.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	logger.Info("user saved/updated", "telegram_id", user.TelegramID, "name", user.DisplayName())

	ev := archive.Event{
		TelegramID: user.TelegramID,
		Username:   user.Username,
		Endpoint:   r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		InitData:   values,
		At:         s.now(),
	}
	if err := s.archive.Record(ctx, ev); err != nil {
		logger.Error("error archiving auth event", "telegram_id", user.TelegramID, "error", err)
	}

	return user, true
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			LoggerFrom(r.Context()).Error("health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
