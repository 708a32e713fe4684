// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"liftit/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration is the input to Register. Profile and Goals override the
// defaults field by field.
type Registration struct {
	Email    string              `json:"email"`
	Password string              `json:"password"`
	Name     string              `json:"name"`
	Profile  domain.ProfilePatch `json:"profile"`
	Goals    domain.GoalsPatch   `json:"goals"`
}

// UserStore keeps the user collection and the session pointer in a KV store.
// Every call reads and writes whole blobs; mu serializes the
// read-modify-write cycles of one process.
type UserStore struct {
	mu       sync.Mutex
	kv       domain.KVStore
	log      logrus.FieldLogger
	now      func() time.Time
	hashCost int
}

// NewUserStore creates a UserStore backed by kv.
func NewUserStore(kv domain.KVStore, log logrus.FieldLogger) *UserStore {
	return &UserStore{
		kv:       kv,
		log:      log,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithClock replaces the clock used for timestamps and day boundaries.
func (s *UserStore) WithClock(now func() time.Time) *UserStore {
	s.now = now
	return s
}

// WithHashCost sets the bcrypt cost for new passwords.
func (s *UserStore) WithHashCost(cost int) *UserStore {
	s.hashCost = cost
	return s
}

// Now returns the store's current time.
func (s *UserStore) Now() time.Time {
	return s.now()
}

// Register validates and creates a new user, then logs them in.
func (s *UserStore) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	u, err := s.Create(ctx, reg)
	if err != nil {
		return nil, err
	}
	return s.Login(ctx, u.Email, reg.Password)
}

// Create validates and stores a new user without touching the session.
func (s *UserStore) Create(ctx context.Context, reg Registration) (*domain.User, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return nil, ErrValidation
	}
	if !emailPattern.MatchString(reg.Email) {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	s.mu.Lock()
	users, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if indexByEmail(users, reg.Email) >= 0 {
		s.mu.Unlock()
		return nil, ErrDuplicateEmail
	}
	if len(reg.Password) < MinPasswordLength {
		s.mu.Unlock()
		return nil, ErrWeakCredential
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(reg.Password), s.hashCost)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := newUser(reg, string(hash), s.now())
	users = append(users, u)
	if err := s.save(ctx, users); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.log.WithField("user_id", u.ID).Info("user registered")
	return &u, nil
}

// passwordDigest maps a password of any length onto a fixed 44-byte input,
// below bcrypt's 72-byte limit.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func newUser(reg Registration, hash string, now time.Time) domain.User {
	if reg.Profile.Weight != nil && *reg.Profile.Weight <= 0 {
		reg.Profile.Weight = nil
	}
	profile := domain.DefaultProfile()
	reg.Profile.Apply(&profile)

	goals := domain.Goals{
		TargetWeight:    domain.DefaultTargetWeight,
		TargetProtein:   domain.DefaultTargetProtein,
		SessionsPerWeek: domain.DefaultSessionsPerWeek,
	}
	if reg.Profile.Weight != nil {
		goals.TargetProtein = *reg.Profile.Weight * 2
	}
	reg.Goals.Apply(&goals)

	return domain.User{
		ID:           uuid.NewString(),
		Email:        reg.Email,
		Name:         reg.Name,
		PasswordHash: hash,
		RegisteredAt: now.UTC(),
		Profile:      profile,
		Goals:        goals,
		Settings:     domain.DefaultSettings(),
	}
}

// Login authenticates a user and persists them as the current session.
func (s *UserStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, u); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", u.ID).Info("user logged in")
	return u, nil
}

// Authenticate checks credentials without changing the current session.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticate(ctx, email, password)
}

func (s *UserStore) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByEmail(users, strings.TrimSpace(email))
	if i < 0 {
		return nil, ErrInvalidCredentials
	}
	u := users[i]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordDigest(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Logout clears the current session.
func (s *UserStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, domain.CurrentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("user logged out")
	return nil
}

// CurrentUser resolves the session pointer to the stored user.
func (s *UserStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, domain.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, ErrNoSession
	}
	var snapshot domain.User
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, snapshot.ID)
	if i < 0 {
		return nil, ErrNoSession
	}
	return &users[i], nil
}

// GetUser returns the user with the given id.
func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return &users[i], nil
}

// FindByEmail returns the user registered under email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByEmail(users, strings.TrimSpace(email))
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return &users[i], nil
}

// Count returns the number of registered users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// UpdateUser merges patch into the stored user.
func (s *UserStore) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	return s.mutate(ctx, id, func(u *domain.User) {
		patch.Apply(u)
	})
}

// UpdateProfile merges the given profile fields into the stored profile.
func (s *UserStore) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	return s.UpdateUser(ctx, id, domain.UserPatch{Profile: &patch})
}

// UpdateGoals merges the given goal fields into the stored goals.
func (s *UserStore) UpdateGoals(ctx context.Context, id string, patch domain.GoalsPatch) (*domain.User, error) {
	return s.UpdateUser(ctx, id, domain.UserPatch{Goals: &patch})
}

// AddProgress appends a timestamped ledger entry for the input's category.
func (s *UserStore) AddProgress(ctx context.Context, id string, in domain.ProgressInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	at := s.now()
	u, err := s.mutate(ctx, id, func(u *domain.User) {
		in.AppendTo(&u.Progress, at)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "category": in.Category()}).Debug("progress recorded")
	return u, nil
}

// Stats computes the ledger summary for a user.
func (s *UserStore) Stats(ctx context.Context, id string) (*domain.Stats, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeStats(u, s.now())
	return &stats, nil
}

// mutate applies fn to the user with id, persists the collection and
// refreshes the session snapshot when that user is logged in.
func (s *UserStore) mutate(ctx context.Context, id string, fn func(*domain.User)) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	fn(&users[i])

	if err := s.save(ctx, users); err != nil {
		return nil, err
	}
	if err := s.refreshSession(ctx, &users[i]); err != nil {
		return nil, err
	}
	return &users[i], nil
}

func (s *UserStore) load(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := s.kv.Get(ctx, domain.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) save(ctx context.Context, users []domain.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Set(ctx, domain.UsersKey, string(b)); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

func (s *UserStore) saveSession(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, domain.CurrentUserKey, string(b)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *UserStore) refreshSession(ctx context.Context, u *domain.User) error {
	raw, ok, err := s.kv.Get(ctx, domain.CurrentUserKey)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil
	}
	var current struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	if current.ID != u.ID {
		return nil
	}
	return s.saveSession(ctx, u)
}

func indexByID(users []domain.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexByEmail(users []domain.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
