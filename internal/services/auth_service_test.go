package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-kanban/internal/testutil"
)

func newAuthService(repo *testutil.FakeRepository) AuthService {
	return NewAuthService(zerolog.Nop(), repo, "go-kanban-test", []byte("test-signing-key"), time.Hour)
}

func TestRegister(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Email:    "Alice@Example.COM",
		Name:     "Alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterDefaultsNameToEmailLocalPart(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterParams{
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
}

func TestRegisterValidation(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Register(ctx, RegisterParams{Email: "carol@example.com"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRegisterDuplicateEmailLeavesOriginalUntouched(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	original, err := svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Name:     "Impostor",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	stored, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, original.ID, stored.ID)
	assert.Equal(t, "Alice", stored.Name)
}

func TestLoginAndVerifyToken(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Login is case-insensitive on the email.
	_, err = svc.Login(ctx, "ALICE@example.com", "password123")
	require.NoError(t, err)
}

func TestLoginDoesNotLeakWhichCredentialFailed(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "password123")
	require.Error(t, unknownErr)
	_, mismatchErr := svc.Login(ctx, "alice@example.com", "wrong-password")
	require.Error(t, mismatchErr)

	assert.Equal(t, KindUnauthenticated, KindOf(unknownErr))
	assert.Equal(t, KindUnauthenticated, KindOf(mismatchErr))
	assert.Equal(t, unknownErr.Error(), mismatchErr.Error())
}

func TestVerifyTokenRejectsForgedTokens(t *testing.T) {
	repo := testutil.NewFakeRepository()
	svc := newAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	// Signed with a different key.
	other := NewAuthService(zerolog.Nop(), repo, "go-kanban-test", []byte("other-key"), time.Hour)
	token, err := other.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestVerifyTokenRejectsExpiredTokens(t *testing.T) {
	repo := testutil.NewFakeRepository()
	expired := NewAuthService(zerolog.Nop(), repo, "go-kanban-test", []byte("test-signing-key"), -time.Minute)
	ctx := context.Background()

	_, err := expired.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	token, err := expired.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = expired.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}
