// Package server provides the HTTP REST API for the Sentra workflow auditor.
package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sentra_session"

// defaultSessionTTL bounds a session's lifetime. History for the session
// becomes unreachable once the token expires.
const defaultSessionTTL = 24 * time.Hour

// SessionClaims represents JWT claims carrying the anonymous session ID.
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionService mints and validates signed session tokens. Sessions are
// anonymous: the token only scopes the history log to one browser.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a session service. An empty secret gets a
// random one, which invalidates outstanding sessions on restart; set
// SESSION_SECRET to keep sessions across restarts.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &SessionService{secret: key, ttl: ttl}
}

// IssueToken generates a signed token for a fresh session ID.
func (s *SessionService) IssueToken() (token string, sessionID uuid.UUID, err error) {
	sessionID = uuid.New()
	now := time.Now()

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, sessionID, nil
}

// ValidateToken parses a session token and returns its session ID.
func (s *SessionService) ValidateToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("token string is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid || claims.SessionID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("session token is not valid")
	}
	return claims.SessionID, nil
}

// sessionID resolves the request's session, minting a new session (and
// setting its cookie) when the request carries none or an invalid one.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if id, err := s.sessions.ValidateToken(cookie.Value); err == nil {
			return id, nil
		}
	}

	token, id, err := s.sessions.IssueToken()
	if err != nil {
		return uuid.Nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}
