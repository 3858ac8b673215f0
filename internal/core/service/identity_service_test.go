package service

import (
	"context"
	"errors"
	"testing"

	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
	"github.com/collabhub/identity-service/internal/infrastructure/db/memory"
)

// countingStore wraps the in-memory store and counts persisted writes, so
// tests can assert the one-write-per-call contract.
type countingStore struct {
	inner *memory.UserStore
	saves int
}

func (s *countingStore) Load(ctx context.Context) ([]domain.User, error) {
	return s.inner.Load(ctx)
}

func (s *countingStore) Save(ctx context.Context, users []domain.User) error {
	s.saves++
	return s.inner.Save(ctx, users)
}

func newTestIdentityService() (*IdentityService, *countingStore) {
	store := &countingStore{inner: memory.NewUserStore()}
	return NewIdentityService(NewCollection(store)), store
}

func TestIdentityService_RegisterThenLogin(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "longpass1", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "longpass1" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}

	// Login normalizes case and whitespace to the same record.
	logged, err := svc.LoginEmail(ctx, "  A@X.COM ", "longpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, logged.ID)
	}
}

func TestIdentityService_Register_DuplicateEmailNormalized(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A@B.COM", "longpass1", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.com", "longpass2", "", ""); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestIdentityService_Register_WeakPassword(t *testing.T) {
	svc, _ := newTestIdentityService()

	if _, err := svc.Register(context.Background(), "a@b.com", "short7!", "", ""); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestIdentityService_Login_UniformFailure(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "real@x.com", "longpass1", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.LoginEmail(ctx, "real@x.com", "wrongpass1")
	_, noUser := svc.LoginEmail(ctx, "ghost@x.com", "longpass1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) || !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestIdentityService_LoginPhone(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "p@x.com", "longpass1", "", "+15550001111")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	logged, err := svc.LoginPhone(ctx, "+15550001111", "longpass1")
	if err != nil {
		t.Fatalf("phone login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, logged.ID)
	}

	if _, err := svc.LoginPhone(ctx, "+15559999999", "longpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentityService_ResolveProvider_LinksExistingAccount(t *testing.T) {
	svc, store := newTestIdentityService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "link@x.com", "longpass1", "linkuser", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	savesAfterRegister := store.saves

	resolved, err := svc.ResolveProvider(ctx, ports.ProviderProfile{
		Provider: domain.ProviderGoogle,
		Subject:  "goog-123",
		Email:    "LINK@X.COM",
		Name:     "Link User",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != registered.ID {
		t.Fatalf("expected link onto existing account, got new id %s", resolved.ID)
	}
	if resolved.GoogleID != "goog-123" {
		t.Fatalf("expected provider linkage, got %q", resolved.GoogleID)
	}
	if store.saves != savesAfterRegister+1 {
		t.Fatalf("expected exactly one write for link, got %d", store.saves-savesAfterRegister)
	}

	// A second resolution with the same subject is a no-op: no new record,
	// no write.
	again, err := svc.ResolveProvider(ctx, ports.ProviderProfile{
		Provider: domain.ProviderGoogle,
		Subject:  "goog-123",
		Email:    "link@x.com",
	})
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.ID != registered.ID {
		t.Fatalf("expected same account, got %s", again.ID)
	}
	if store.saves != savesAfterRegister+1 {
		t.Fatalf("idempotent resolve must not write, saves=%d", store.saves)
	}
}

func TestIdentityService_ResolveProvider_CreatesNewAccount(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	resolved, err := svc.ResolveProvider(ctx, ports.ProviderProfile{
		Provider: domain.ProviderGithub,
		Subject:  "gh-42",
		Email:    "new@x.com",
		Name:     "New Person",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID == "" || resolved.GithubID != "gh-42" {
		t.Fatalf("unexpected record: %+v", resolved)
	}
	if resolved.Email != "new@x.com" || resolved.Username != "New Person" {
		t.Fatalf("unexpected profile fields: %+v", resolved)
	}
	if resolved.PasswordHash != "" {
		t.Fatalf("provider-only account must have no password hash")
	}
}

func TestIdentityService_ResolveProvider_MatchesBySubject(t *testing.T) {
	svc, _ := newTestIdentityService()
	ctx := context.Background()

	first, err := svc.ResolveProvider(ctx, ports.ProviderProfile{
		Provider: domain.ProviderFacebook,
		Subject:  "fb-7",
		Email:    "old@x.com",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Same subject with a changed email still resolves to the same record.
	second, err := svc.ResolveProvider(ctx, ports.ProviderProfile{
		Provider: domain.ProviderFacebook,
		Subject:  "fb-7",
		Email:    "changed@x.com",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected subject match to reuse record, got %s vs %s", second.ID, first.ID)
	}
}

func TestIdentityService_ResolveProvider_UnknownProvider(t *testing.T) {
	svc, _ := newTestIdentityService()

	_, err := svc.ResolveProvider(context.Background(), ports.ProviderProfile{
		Provider: "myspace",
		Subject:  "x",
	})
	if !errors.Is(err, domain.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}
