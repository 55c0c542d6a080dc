// Package auth gates the staff dashboard behind a shared secret and issues session tokens.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"orderdesk/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const subject = "dashboard"

// Session is an authorised staff session.
type Session struct {
	ID       string
	IssuedAt time.Time
}

// Authorized reports whether the session grants dashboard access.
func (s *Session) Authorized() bool {
	return s != nil && s.ID != ""
}

// Claims are the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionManager checks the shared secret and tracks live sessions.
// Tokens carry no expiry; a session ends only on Logout or process restart.
type SessionManager struct {
	passwordHash []byte
	signingKey   []byte
	now          func() time.Time
	logger       zerolog.Logger

	mu     sync.RWMutex
	active map[string]time.Time
}

// NewSessionManager creates a session manager. passwordHash is a bcrypt hash of the shared secret.
func NewSessionManager(passwordHash string, signingKey []byte, logger zerolog.Logger) (*SessionManager, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if len(signingKey) == 0 {
		return nil, errors.New("session signing key is required")
	}

	return &SessionManager{
		passwordHash: []byte(passwordHash),
		signingKey:   signingKey,
		now:          time.Now,
		logger:       logger.With().Str("component", "session").Logger(),
		active:       make(map[string]time.Time),
	}, nil
}

// HashPassword returns the bcrypt hash to configure for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// Login checks password and starts a new session, returning its signed token.
func (m *SessionManager) Login(password string) (string, *Session, error) {
	if bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) != nil {
		m.logger.Warn().Msg("login rejected: wrong password")
		return "", nil, model.ErrUnauthorized.WithMessage("wrong password")
	}

	session := &Session{ID: uuid.New().String(), IssuedAt: m.now().UTC().Truncate(time.Second)}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       session.ID,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(session.IssuedAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to sign session token")
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	m.mu.Lock()
	m.active[session.ID] = session.IssuedAt
	m.mu.Unlock()

	m.logger.Info().Str("session_id", session.ID).Msg("session started")

	return token, session, nil
}

// Validate parses token and returns its session if it is signed by us and not logged out.
func (m *SessionManager) Validate(token string) (*Session, error) {
	if token == "" {
		return nil, model.ErrUnauthorized.WithMessage("missing session token")
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.signingKey, nil
		},
	)
	if err != nil {
		return nil, model.ErrUnauthorized.WithMessage("invalid session token").Wrap(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject != subject {
		return nil, model.ErrUnauthorized.WithMessage("invalid session token")
	}

	m.mu.RLock()
	issuedAt, live := m.active[claims.ID]
	m.mu.RUnlock()
	if !live {
		return nil, model.ErrUnauthorized.WithMessage("session has ended")
	}

	return &Session{ID: claims.ID, IssuedAt: issuedAt}, nil
}

// Logout ends the session behind token. Later Validate calls for it fail.
func (m *SessionManager) Logout(token string) error {
	session, err := m.Validate(token)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.active, session.ID)
	m.mu.Unlock()

	m.logger.Info().Str("session_id", session.ID).Msg("session ended")
	return nil
}
