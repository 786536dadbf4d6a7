package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mock"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
)

type authMocks struct {
	users    *mock.MockUserRepository
	envelope *mock.MockEnvelopeService
	tokens   *mock.MockTokenService
}

func newTestAuthService(t *testing.T) (AuthService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:    mock.NewMockUserRepository(ctrl),
		envelope: mock.NewMockEnvelopeService(ctrl),
		tokens:   mock.NewMockTokenService(ctrl),
	}

	return NewAuthService(m.users, m.envelope, m.tokens, testAppConfig(), logger.Nop()), m
}

func sealedFixture() crypto.SealedEnvelope {
	return crypto.SealedEnvelope{
		Salt:             []byte("0123456789abcdef"),
		SealedContentKey: []byte("0123456789abcdef-sealed-key"),
		SealedVerifier:   []byte("sealed-verifier"),
	}
}

func storedUserFixture() models.User {
	s := sealedFixture()
	return models.User{
		UserID:                 "user-1",
		Email:                  "a@example.com",
		DisplayName:            "Alice",
		Salt:                   s.Salt,
		SealedContentKey:       s.SealedContentKey,
		SealedPasswordVerifier: s.SealedVerifier,
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.envelope.EXPECT().SealEnvelope("longpassword1").Return(sealedFixture(), nil)
	m.users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.NotEmpty(t, u.UserID)
			assert.Equal(t, "a@example.com", u.Email)
			assert.Equal(t, "Alice", u.DisplayName)
			assert.False(t, u.CreatedAt.IsZero())
			assert.Equal(t, sealedFixture().Salt, u.Salt)
			assert.Equal(t, sealedFixture().SealedContentKey, u.SealedContentKey)
			assert.Equal(t, sealedFixture().SealedVerifier, u.SealedPasswordVerifier)
			return u, nil
		})

	profile, err := svc.Register(ctx, models.RegisterRequest{
		Email:       "  A@Example.COM ",
		Password:    "longpassword1",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, profile.UserID)
	assert.Equal(t, "a@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.DisplayName)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr error
	}{
		{
			name:    "bad email",
			req:     models.RegisterRequest{Email: "not-an-email", Password: "longpassword1", DisplayName: "Alice"},
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name:    "short password",
			req:     models.RegisterRequest{Email: "a@example.com", Password: "short", DisplayName: "Alice"},
			wantErr: validators.ErrPasswordTooShort,
		},
		{
			name:    "short display name",
			req:     models.RegisterRequest{Email: "a@example.com", Password: "longpassword1", DisplayName: "Al"},
			wantErr: validators.ErrDisplayNameTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService(t)

			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.envelope.EXPECT().SealEnvelope(gomock.Any()).Return(sealedFixture(), nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: "longpassword1", DisplayName: "Alice",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_StoreError(t *testing.T) {
	svc, m := newTestAuthService(t)
	dbErr := errors.New("connection refused")

	m.envelope.EXPECT().SealEnvelope(gomock.Any()).Return(sealedFixture(), nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "a@example.com", Password: "longpassword1", DisplayName: "Alice",
	})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_CancelledContext(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// hold every KDF slot so Register has to wait for one
	as := svc.(*authService)
	require.True(t, as.kdfSlots.TryAcquire(int64(testAppConfig().KDFConcurrency)))
	defer as.kdfSlots.Release(int64(testAppConfig().KDFConcurrency))

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "a@example.com", Password: "longpassword1", DisplayName: "Alice",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	user := storedUserFixture()
	contentKey := []byte("content-key")

	m.users.EXPECT().FindUserByEmail(ctx, "a@example.com").Return(user, nil)
	m.envelope.EXPECT().OpenEnvelope("longpassword1", user.SealedContentKey, user.SealedPasswordVerifier).Return(contentKey, nil)
	m.tokens.EXPECT().Issue(ctx, user.Profile(), contentKey).Return(models.Token{SignedString: "signed.jwt.token"}, nil)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "A@example.com", Password: "longpassword1"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, user.Profile(), resp.Profile)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.users.EXPECT().FindUserByEmail(gomock.Any(), "nobody@example.com").Return(models.User{}, store.ErrUserNotFound)
	m.envelope.EXPECT().DeriveKeyFromPassword("longpassword1", gomock.Any()).Return(make([]byte, 32))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "longpassword1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := newTestAuthService(t)
	user := storedUserFixture()

	m.users.EXPECT().FindUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.envelope.EXPECT().OpenEnvelope("wrongpassword", gomock.Any(), gomock.Any()).Return(nil, crypto.ErrAuthFailure)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "wrongpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_ShortPasswordIsAuthFailure(t *testing.T) {
	svc, m := newTestAuthService(t)
	user := storedUserFixture()

	m.users.EXPECT().FindUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.envelope.EXPECT().OpenEnvelope("abc", gomock.Any(), gomock.Any()).Return(nil, crypto.ErrAuthFailure)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "abc"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_EmptyPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEmptyPassword)
}

func TestAuthService_Login_MalformedEmailIsAuthFailure(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.users.EXPECT().FindUserByEmail(gomock.Any(), "notanemail").Return(models.User{}, store.ErrUserNotFound)
	m.envelope.EXPECT().DeriveKeyFromPassword("x", gomock.Any()).Return(make([]byte, 32))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "NotAnEmail", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login_EmptyEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "   ", Password: "longpassword1"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEmptyEmail)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	svc, m := newTestAuthService(t)
	dbErr := errors.New("timeout")

	m.users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "longpassword1"})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_IssueError(t *testing.T) {
	svc, m := newTestAuthService(t)
	user := storedUserFixture()
	issueErr := errors.New("sign failure")

	m.users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
	m.envelope.EXPECT().OpenEnvelope(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("key"), nil)
	m.tokens.EXPECT().Issue(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Token{}, issueErr)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "longpassword1"})
	assert.ErrorIs(t, err, issueErr)
}

// ── Profile ──────────────────────────────────────────────────────────────────

func TestAuthService_Profile(t *testing.T) {
	svc, m := newTestAuthService(t)
	user := storedUserFixture()

	m.users.EXPECT().FindUserByID(gomock.Any(), user.UserID).Return(user, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), "missing").Return(models.User{}, store.ErrUserNotFound)

	profile, err := svc.Profile(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user.Profile(), profile)

	_, err = svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
