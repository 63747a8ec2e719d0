package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/stockroom/internal/auth"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

type webContextKey string

const webSessionKey webContextKey = "websession"

// sessionCookie is the name of the cookie carrying the session token.
const sessionCookie = "session"

// SessionMiddleware resolves the browser's session from its cookie and adds
// it to the context. A missing, invalid or unknown token starts a new
// session.
func SessionMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := lookupSession(r, secret, db)
			if sess == nil {
				var err error
				sess, err = startSession(r.Context(), w, secret, db)
				if err != nil {
					slog.Error("failed to start session", "error", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
			} else if err := store.TouchSession(r.Context(), db, sess.ID); err != nil {
				slog.Warn("failed to touch session", "session", sess.ID, "error", err)
			}

			ctx := context.WithValue(r.Context(), webSessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func lookupSession(r *http.Request, secret string, db *sql.DB) *model.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		slog.Debug("discarding session token", "error", err)
		return nil
	}

	sess, err := store.GetSession(r.Context(), db, claims.SessionID())
	if err != nil {
		slog.Error("failed to load session", "error", err)
		return nil
	}
	return sess
}

func startSession(ctx context.Context, w http.ResponseWriter, secret string, db *sql.DB) (*model.Session, error) {
	sess, err := store.CreateSession(ctx, db)
	if err != nil {
		return nil, err
	}
	token, err := auth.GenerateToken(secret, sess.ID)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	slog.Info("session started", "session", sess.ID)
	return sess, nil
}

// GetSession retrieves the session from web context.
func GetSession(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(webSessionKey).(*model.Session)
	return sess
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
