package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"liftit/internal/domain"

	"github.com/sirupsen/logrus"
)

// DefaultSessionTTL is how long a session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Session binds a token to a user until it expires.
type Session struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionService issues and resolves per-client session tokens. Sessions are
// kept as one token-to-session map in the KV store, separate from the
// single current-user pointer that UserStore maintains.
type SessionService struct {
	mu    sync.Mutex
	kv    domain.KVStore
	users *UserStore
	log   logrus.FieldLogger
	ttl   time.Duration
}

// NewSessionService creates a SessionService. A non-positive ttl selects
// DefaultSessionTTL.
func NewSessionService(kv domain.KVStore, users *UserStore, log logrus.FieldLogger, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{kv: kv, users: users, log: log, ttl: ttl}
}

// TTL returns how long issued sessions stay valid.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Register creates a user and opens a session for them.
func (s *SessionService) Register(ctx context.Context, reg Registration) (string, *domain.User, error) {
	u, err := s.users.Create(ctx, reg)
	if err != nil {
		return "", nil, err
	}
	token, err := s.start(ctx, u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Login authenticates a user and opens a session for them.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.start(ctx, u.ID)
	if err != nil {
		return "", nil, err
	}
	s.log.WithField("user_id", u.ID).Info("session opened")
	return token, u, nil
}

// Logout invalidates a session. Unknown tokens are ignored.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return s.save(ctx, sessions)
}

// Validate resolves a token to its user. Missing, unknown and expired tokens
// yield ErrNoSession.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	sessions, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	session, ok := sessions[token]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if !s.users.Now().Before(session.ExpiresAt) {
		delete(sessions, token)
		err := s.save(ctx, sessions)
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: session expired", ErrNoSession)
	}
	s.mu.Unlock()

	u, err := s.users.GetUser(ctx, session.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrNoSession
	}
	return u, err
}

func (s *SessionService) start(ctx context.Context, userID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	now := s.users.Now()
	for t, sess := range sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(sessions, t)
		}
	}
	sessions[token] = Session{UserID: userID, ExpiresAt: now.Add(s.ttl).UTC()}
	if err := s.save(ctx, sessions); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionService) load(ctx context.Context) (map[string]Session, error) {
	raw, ok, err := s.kv.Get(ctx, domain.SessionsKey)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	sessions := map[string]Session{}
	if !ok || raw == "" {
		return sessions, nil
	}
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	if sessions == nil {
		sessions = map[string]Session{}
	}
	return sessions, nil
}

func (s *SessionService) save(ctx context.Context, sessions map[string]Session) error {
	b, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := s.kv.Set(ctx, domain.SessionsKey, string(b)); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
