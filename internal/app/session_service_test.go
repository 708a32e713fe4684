package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftit/internal/app"
	"liftit/internal/logging"
)

func TestSessionService_IsolatesClients(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	s, kv := newStore(t, clock)
	sessions := app.NewSessionService(kv, s, logging.Discard(), time.Hour)
	ctx := context.Background()

	aliceToken, alice, err := sessions.Register(ctx, app.Registration{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.CurrentUser(ctx); !errors.Is(err, app.ErrNoSession) {
		t.Errorf("session registration must not set the shared pointer, got %v", err)
	}

	if _, _, err := sessions.Login(ctx, "alice@example.com", "wrongpass1"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	mustRegister(t, s, "bob@example.com")
	bobToken, bob, err := sessions.Login(ctx, "bob@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if bobToken == aliceToken {
		t.Fatal("expected distinct tokens")
	}

	got, err := sessions.Validate(ctx, aliceToken)
	if err != nil || got.ID != alice.ID {
		t.Errorf("alice token resolved to %+v, %v", got, err)
	}
	got, err = sessions.Validate(ctx, bobToken)
	if err != nil || got.ID != bob.ID {
		t.Errorf("bob token resolved to %+v, %v", got, err)
	}

	for _, token := range []string{"", "forged"} {
		if _, err := sessions.Validate(ctx, token); !errors.Is(err, app.ErrNoSession) {
			t.Errorf("token %q: expected ErrNoSession, got %v", token, err)
		}
	}

	if err := sessions.Logout(ctx, aliceToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := sessions.Validate(ctx, aliceToken); !errors.Is(err, app.ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}
	if _, err := sessions.Validate(ctx, bobToken); err != nil {
		t.Errorf("other sessions must survive logout: %v", err)
	}
	if err := sessions.Logout(ctx, "unknown"); err != nil {
		t.Errorf("Logout of unknown token: %v", err)
	}
}

func TestSessionService_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	s, kv := newStore(t, clock)
	sessions := app.NewSessionService(kv, s, logging.Discard(), time.Hour)
	ctx := context.Background()

	token, _, err := sessions.Register(ctx, app.Registration{Email: "exp@example.com", Password: "password123", Name: "E"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	clock.now = clock.now.Add(59 * time.Minute)
	if _, err := sessions.Validate(ctx, token); err != nil {
		t.Fatalf("Validate before expiry: %v", err)
	}

	clock.now = clock.now.Add(time.Minute)
	if _, err := sessions.Validate(ctx, token); !errors.Is(err, app.ErrNoSession) {
		t.Errorf("expected ErrNoSession after expiry, got %v", err)
	}
}

func TestSessionService_CorruptData(t *testing.T) {
	s, _ := newStore(t, &fakeClock{now: time.Now()})
	kv := &mockKV{
		getFn: func(_ context.Context, _ string) (string, bool, error) {
			return "{not json", true, nil
		},
	}
	sessions := app.NewSessionService(kv, s, logging.Discard(), 0)
	_, err := sessions.Validate(context.Background(), "token")
	if err == nil || errors.Is(err, app.ErrNoSession) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
