package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/notify"
	"voltworks/internal/session"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

// AuthAPI is satisfied by client.AuthClient.
type AuthAPI interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	auth       AuthAPI
	store      *session.Store
	center     *notify.Center
	views      *service.ViewRegistry
	sessionTTL time.Duration
	log        *logger.Logger
}

func NewAuthHandler(
	auth AuthAPI,
	store *session.Store,
	center *notify.Center,
	views *service.ViewRegistry,
	sessionTTL time.Duration,
	log *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		store:      store,
		center:     center,
		views:      views,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/logout", h.Logout)
	router.GET("/api/v1/auth/me", h.Me)
	router.GET("/api/v1/auth/notifications", h.Notifications)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	login, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.store.Login(r.Context(), login)
	if err != nil {
		h.log.Error("Login rejected by session store", "user_id", login.User.ID, "error", err)
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
			Error: "Login failed",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     guard.SessionCookie,
		Value:    record.ID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	user := record.User
	httputil.WriteSuccess(w, session.Snapshot{User: &user, Authenticated: true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cookie, err := r.Cookie(guard.SessionCookie)
	if err != nil || cookie.Value == "" {
		// Already signed out; logging out twice is not an error.
		httputil.WriteRedirect(w, http.StatusOK, httputil.RedirectResponse{
			Redirect: guard.LoginPath,
			Replace:  true,
		})
		return
	}
	sessionID := cookie.Value

	if token, err := h.store.Token(r.Context(), sessionID); err == nil {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.log.Warn("Upstream logout failed", "session_id", sessionID, "error", err)
		}
	}

	if err := h.store.Logout(r.Context(), sessionID); err != nil {
		h.log.Warn("Session removal failed", "session_id", sessionID, "error", err)
	}
	h.views.Drop(sessionID)
	h.center.Discard(sessionID)

	http.SetCookie(w, &http.Cookie{
		Name:     guard.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteRedirect(w, http.StatusOK, httputil.RedirectResponse{
		Redirect: guard.LoginPath,
		Replace:  true,
	})
}

// Me resolves the caller's session. The route is public: an anonymous caller
// gets the unauthenticated snapshot, not an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := ""
	if cookie, err := r.Cookie(guard.SessionCookie); err == nil {
		sessionID = cookie.Value
	}
	httputil.WriteSuccess(w, h.store.Resolve(r.Context(), sessionID))
}

func (h *AuthHandler) Notifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cookie, err := r.Cookie(guard.SessionCookie)
	if err != nil || cookie.Value == "" {
		httputil.WriteSuccess(w, []notify.Notification{})
		return
	}

	pending := h.center.Drain(cookie.Value)
	if pending == nil {
		pending = []notify.Notification{}
	}
	httputil.WriteSuccess(w, pending)
}
