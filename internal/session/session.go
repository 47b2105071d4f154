package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cookieName = "tienda_session"

// ErrNoSession indicates the request carries no valid session cookie.
var ErrNoSession = errors.New("no session")

// Identity is what a session remembers about its user. A zero UserID means
// the session is anonymous (browsing before login).
type Identity struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Session is the per-request view of the store-backed session.
type Session struct {
	ID       string
	Identity Identity
}

// Authenticated reports whether a user has logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity.UserID != 0
}

// Manager keeps session state server-side in Redis. The browser only holds
// the session ID, wrapped in an HMAC-signed token so it cannot be forged.
type Manager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager.
func NewManager(rdb *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

// Issue creates a new session holding ident, stores it in Redis, and sets
// the signed cookie on the response. It returns the new session ID.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, ident Identity) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := m.rdb.Set(ctx, sessionKey(id), data, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	claims := &jwt.StandardClaims{
		Id:        id,
		ExpiresAt: time.Now().Add(m.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Resolve reads the session cookie and loads the session from Redis.
// Returns ErrNoSession for missing, invalid, or expired sessions.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Id == "" {
		return nil, ErrNoSession
	}

	data, err := m.rdb.Get(ctx, sessionKey(claims.Id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		// Corrupt entry: treat as logged out rather than failing the request.
		return nil, ErrNoSession
	}
	return &Session{ID: claims.Id, Identity: ident}, nil
}

// Destroy removes the session and its pending flash notices and clears the
// cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s == nil {
		return nil
	}
	err := m.rdb.Del(ctx, sessionKey(s.ID), flashKey(s.ID)).Err()

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return err
}

func sessionKey(id string) string { return "session:" + id }
