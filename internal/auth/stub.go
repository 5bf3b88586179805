package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	demoName   = "Demo User"
	demoEmail  = "demo@example.com"
	newName    = "New User"
	newEmail   = "new@example.com"
	demoMobile = "1234567890"
)

// Stub accepts every request after Delay and returns fixed identities.
// It checks no credentials.
type Stub struct {
	Delay time.Duration
}

func NewStub(delay time.Duration) *Stub {
	return &Stub{Delay: delay}
}

func (s *Stub) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Stub) Login(ctx context.Context, creds Credentials) (Identity, error) {
	if err := s.wait(ctx); err != nil {
		return Anonymous(), err
	}
	return Authenticated(User{
		FullName: demoName,
		Email:    orDefault(creds.Email, demoEmail),
		Mobile:   demoMobile,
	}), nil
}

func (s *Stub) Register(ctx context.Context, reg Registration) (Challenge, error) {
	if err := s.wait(ctx); err != nil {
		return Challenge{}, err
	}
	return Challenge{
		ID:       uuid.NewString(),
		FullName: reg.FullName,
		Email:    reg.Email,
		Mobile:   reg.Mobile,
	}, nil
}

func (s *Stub) Verify(ctx context.Context, ch Challenge, code string) (Identity, error) {
	if err := s.wait(ctx); err != nil {
		return Anonymous(), err
	}
	return Authenticated(User{
		FullName: orDefault(ch.FullName, newName),
		Email:    orDefault(ch.Email, newEmail),
		Mobile:   orDefault(ch.Mobile, demoMobile),
	}), nil
}

func (s *Stub) ResetPassword(ctx context.Context, email string) error {
	return s.wait(ctx)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
