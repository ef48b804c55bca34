package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/logging"
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	sessionCreatedKey
)

// WithRequestMetadata adds IP and User-Agent to context for submissions.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, clientIP(r)) // resolved by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}

// sessionFromContext returns the session attached by sessionMiddleware.
func sessionFromContext(ctx context.Context) *core.Session {
	sess, _ := ctx.Value(sessionKey).(*core.Session)
	return sess
}

// sessionCreated reports whether sessionMiddleware created (and so already
// mounted) the session for this request.
func sessionCreated(ctx context.Context) bool {
	created, _ := ctx.Value(sessionCreatedKey).(bool)
	return created
}

// sessionMiddleware attaches the caller's table session, creating and
// mounting one when the cookie is missing or expired.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithRequestMetadata(r.Context(), r)

		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}

		sess, created := s.service.Open(ctx, id)
		if created {
			logging.FromContext(ctx).Info("session created", "session_id", sess.ID)
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL / time.Second),
				HttpOnly: true,
				Secure:   s.cfg.Session.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx = logging.ContextWithSessionID(ctx, sess.ID)
		ctx = context.WithValue(ctx, sessionKey, sess)
		ctx = context.WithValue(ctx, sessionCreatedKey, created)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
