package service

import (
	"errors"
	"testing"

	"co2watch/internal/models"
)

type authRepoStub struct {
	createID  int
	createErr error
	user      *models.User
	getErr    error

	lastUsername string
	lastHash     string
}

func (s *authRepoStub) Create(username, hash string) (int, error) {
	s.lastUsername = username
	s.lastHash = hash
	return s.createID, s.createErr
}

func (s *authRepoStub) GetByUsername(username string) (*models.User, error) {
	return s.user, s.getErr
}

const testSigningKey = "test-signing-key"

func TestAuthService_SignUp(t *testing.T) {
	t.Parallel()

	t.Run("hashes password and creates user", func(t *testing.T) {
		repo := &authRepoStub{createID: 7}
		s := NewAuthService(repo, testSigningKey)
		id, err := s.SignUp("alice", "s3cret")
		if err != nil {
			t.Fatalf("SignUp() error = %v", err)
		}
		if id != 7 {
			t.Fatalf("id = %d, want 7", id)
		}
		if repo.lastHash == "s3cret" || repo.lastHash == "" {
			t.Fatalf("password stored unhashed or empty: %q", repo.lastHash)
		}
	})

	t.Run("rejects empty password", func(t *testing.T) {
		s := NewAuthService(&authRepoStub{}, testSigningKey)
		if _, err := s.SignUp("alice", "  "); err == nil {
			t.Fatal("expected error for blank password")
		}
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	repo := &authRepoStub{createID: 42}
	s := NewAuthService(repo, testSigningKey)

	// Register, then wire the stored hash back into the stub for sign-in.
	if _, err := s.SignUp("bob", "hunter2"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	repo.user = &models.User{ID: 42, Username: "bob", PasswordHash: repo.lastHash}

	token, err := s.GenerateToken("bob", "hunter2")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	userID, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d, want 42", userID)
	}
}

func TestAuthService_GenerateToken_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		s := NewAuthService(&authRepoStub{user: nil}, testSigningKey)
		if _, err := s.GenerateToken("ghost", "pw"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &authRepoStub{}
		s := NewAuthService(repo, testSigningKey)
		_, _ = s.SignUp("bob", "right")
		repo.user = &models.User{ID: 1, Username: "bob", PasswordHash: repo.lastHash}
		if _, err := s.GenerateToken("bob", "wrong"); !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("error = %v, want ErrInvalidPassword", err)
		}
	})
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	t.Parallel()

	repo := &authRepoStub{}
	issuer := NewAuthService(repo, "key-a")
	_, _ = issuer.SignUp("bob", "pw")
	repo.user = &models.User{ID: 1, Username: "bob", PasswordHash: repo.lastHash}
	token, err := issuer.GenerateToken("bob", "pw")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	verifier := NewAuthService(repo, "key-b")
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different key must not parse")
	}
}
