// Package visibility holds the show/hide system objects flag.
//
// In the web viewer the flag lives in the visitor's session; in generator
// runs it is the --show-system flag, copied once into docs.Options. Either
// way it is read once per tree build and threaded through the catalog reader
// explicitly.
package visibility

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"
)

// Default hides system objects.
const Default = false

// SessionName is the cookie-backed session holding the flag.
const SessionName = "pgddui"

const sessionKey = "system_objects"

// ParseFlag interprets a query-string value. Anything that is not a
// recognised true value, including an empty string, is false.
func ParseFlag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// NewCookieStore creates the cookie store used for viewer sessions. The
// viewer listens on plain HTTP, so secure is only set behind a TLS proxy;
// browsers never send Secure cookies back over http://.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30) // 30 days
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// SessionStore keeps the flag per browser session.
type SessionStore struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewSessionStore wraps a gorilla session store.
func NewSessionStore(store sessions.Store, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionStore{store: store, logger: logger}
}

// Get returns the session's flag. On first read the default is stored in the
// session so later reads see the same value.
func (s *SessionStore) Get(w http.ResponseWriter, r *http.Request) (bool, error) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		// An undecodable cookie (e.g. after a secret change) yields a fresh session.
		s.logger.Debug("discarding unreadable session", slog.String("error", err.Error()))
	}

	if show, ok := session.Values[sessionKey].(bool); ok {
		return show, nil
	}

	session.Values[sessionKey] = Default
	if err := session.Save(r, w); err != nil {
		return Default, err
	}
	return Default, nil
}

// Set stores the flag in the session. It affects the next query only.
func (s *SessionStore) Set(w http.ResponseWriter, r *http.Request, show bool) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		s.logger.Debug("discarding unreadable session", slog.String("error", err.Error()))
	}
	session.Values[sessionKey] = show
	return session.Save(r, w)
}

type ctxKey struct{}

// WithShowSystem returns a context carrying the flag for one request.
func WithShowSystem(ctx context.Context, show bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, show)
}

// FromContext returns the flag stored by WithShowSystem, or Default.
func FromContext(ctx context.Context) bool {
	if show, ok := ctx.Value(ctxKey{}).(bool); ok {
		return show
	}
	return Default
}

// Middleware reads the session flag once per request and stores it in the
// request context.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		show, err := s.Get(w, r)
		if err != nil {
			s.logger.Warn("failed to persist session", slog.String("error", err.Error()))
		}
		next.ServeHTTP(w, r.WithContext(WithShowSystem(r.Context(), show)))
	})
}
