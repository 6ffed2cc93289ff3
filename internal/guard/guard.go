// Package guard decides, per request, whether the current session may reach
// the requested route group, and redirects it to login or the unauthorized
// page otherwise. The decision is re-evaluated on every request, so a forced
// logout takes effect on the very next navigation.
package guard

import (
	"context"
	"net/http"

	"voltworks/internal/session"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/logger"
)

// SessionCookie carries the session record ID between requests.
const SessionCookie = "voltworks_session"

type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateUnauthorized    State = "unauthorized"
	StateAuthorized      State = "authorized"
)

// Evaluate runs the guard state machine for one resolved snapshot against one
// requirement. A nil requirement is public and always authorized.
func Evaluate(snapshot session.Snapshot, require *Requirement) State {
	if require == nil {
		return StateAuthorized
	}
	if snapshot.Loading {
		return StateLoading
	}
	if !snapshot.Authenticated || snapshot.User == nil {
		return StateUnauthenticated
	}
	if require.UserType != "" && snapshot.User.UserType != require.UserType {
		return StateUnauthorized
	}
	if require.Role != "" && snapshot.User.Role != require.Role {
		return StateUnauthorized
	}
	return StateAuthorized
}

type contextKey string

const (
	snapshotContextKey  contextKey = "session_snapshot"
	sessionIDContextKey contextKey = "session_id"
)

// WithSession attaches an authorized session to a request context.
func WithSession(ctx context.Context, snapshot session.Snapshot, sessionID string) context.Context {
	ctx = context.WithValue(ctx, snapshotContextKey, snapshot)
	return context.WithValue(ctx, sessionIDContextKey, sessionID)
}

// SnapshotFromContext returns the session snapshot the guard attached for an
// authorized request.
func SnapshotFromContext(ctx context.Context) (session.Snapshot, bool) {
	snapshot, ok := ctx.Value(snapshotContextKey).(session.Snapshot)
	return snapshot, ok
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(string)
	return id, ok
}

// Middleware gates every route through the declarative table. Authorization
// failures are expected navigational outcomes: they redirect silently and
// never produce an error notification.
func Middleware(store *session.Store, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require, _ := RequirementFor(r.URL.Path)

			sessionID := ""
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				sessionID = cookie.Value
			}
			snapshot := store.Resolve(r.Context(), sessionID)

			switch Evaluate(snapshot, require) {
			case StateAuthorized:
				ctx := r.Context()
				if snapshot.Authenticated {
					ctx = WithSession(ctx, snapshot, sessionID)
				}
				next.ServeHTTP(w, r.WithContext(ctx))

			case StateUnauthenticated:
				httputil.WriteRedirect(w, http.StatusUnauthorized, httputil.RedirectResponse{
					Redirect: LoginPath,
					From:     r.URL.RequestURI(),
				})

			case StateUnauthorized:
				log.Info("Route access denied",
					"path", r.URL.Path,
					"user_id", snapshot.User.ID,
					"user_type", snapshot.User.UserType,
					"role", snapshot.User.Role,
				)
				httputil.WriteRedirect(w, http.StatusForbidden, httputil.RedirectResponse{
					Redirect: UnauthorizedPath,
				})

			default:
				// Session resolution still pending; tell the client to hold
				// its loading state and retry.
				w.Header().Set("Retry-After", "1")
				httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.ErrorResponse{
					Error: "Session state is still resolving",
				})
			}
		})
	}
}
