package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskman-io/taskman/internal/account"
	"github.com/taskman-io/taskman/internal/auth"
)

const testBcryptCost = 4 // low cost for fast tests

// --- Mock Repository ---

type mockRepo struct {
	createFn       func(ctx context.Context, u *account.User) error
	getByEmailFn   func(ctx context.Context, email string) (*account.User, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*account.User, error)
	countByEmailFn func(ctx context.Context, email string) (int, error)
}

func (m *mockRepo) Create(ctx context.Context, u *account.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, account.ErrUserNotFound
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, account.ErrUserNotFound
}

func (m *mockRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	if m.countByEmailFn != nil {
		return m.countByEmailFn(ctx, email)
	}
	return 0, nil
}

func newService(repo account.Repository) (*account.Service, *auth.Issuer) {
	issuer := auth.NewIssuer("test-signing-secret", time.Hour)
	return account.NewService(repo, issuer, testBcryptCost), issuer
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var created *account.User
	repo := &mockRepo{
		createFn: func(ctx context.Context, u *account.User) error {
			u.ID = uuid.New()
			u.CreatedAt = time.Now().UTC()
			created = u
			return nil
		},
	}
	svc, issuer := newService(repo)

	result, err := svc.Register(context.Background(), "a@x.com", "Alice", "Pw1!")
	require.NoError(t, err)
	require.True(t, result.OK())
	require.NotNil(t, result.User)

	assert.Equal(t, "Alice", result.User.FullName)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.NotEmpty(t, result.User.Token)

	claims, err := issuer.Parse(result.User.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.UserID.String(), claims.UserID)

	require.NotNil(t, created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Pw1!")))
}

func TestRegister_EmptyEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&mockRepo{})

	result, err := svc.Register(context.Background(), "  ", "Alice", "Pw1!")
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Nil(t, result.User)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	createCalls := 0
	repo := &mockRepo{
		getByEmailFn: func(ctx context.Context, email string) (*account.User, error) {
			return &account.User{ID: uuid.New(), Email: "a@x.com"}, nil
		},
		createFn: func(ctx context.Context, u *account.User) error {
			createCalls++
			return nil
		},
	}
	svc, _ := newService(repo)

	result, err := svc.Register(context.Background(), "a@x.com", "Alice2", "Pw2!")
	require.NoError(t, err)

	assert.False(t, result.OK())
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "already exists")
	assert.Zero(t, createCalls, "no identity should be created for a duplicate email")
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	t.Parallel()

	// The pre-check misses but the unique index rejects the insert.
	repo := &mockRepo{
		createFn: func(ctx context.Context, u *account.User) error {
			return account.ErrEmailTaken
		},
	}
	svc, _ := newService(repo)

	result, err := svc.Register(context.Background(), "a@x.com", "Alice", "Pw1!")
	require.NoError(t, err)

	assert.False(t, result.OK())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "already exists")
}

func TestRegister_PasswordPolicyViolations(t *testing.T) {
	t.Parallel()

	createCalls := 0
	repo := &mockRepo{
		createFn: func(ctx context.Context, u *account.User) error {
			createCalls++
			return nil
		},
	}
	svc, _ := newService(repo)

	result, err := svc.Register(context.Background(), "a@x.com", "Alice", "abc")
	require.NoError(t, err)

	assert.False(t, result.OK())
	assert.Nil(t, result.User, "no token may be issued on policy violation")
	// "abc": too short, no digit, no uppercase, no symbol.
	assert.Len(t, result.Errors, 4)
	assert.Zero(t, createCalls)
}

func TestRegister_PasswordPolicySingleViolation(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&mockRepo{})

	result, err := svc.Register(context.Background(), "a@x.com", "Alice", "Password1!")
	require.NoError(t, err)
	assert.True(t, result.OK())

	result, err = svc.Register(context.Background(), "b@x.com", "Bob", "Password!")
	require.NoError(t, err)
	assert.False(t, result.OK())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "digit")
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Pw1!"), testBcryptCost)
	require.NoError(t, err)

	userID := uuid.New()
	repo := &mockRepo{
		getByEmailFn: func(ctx context.Context, email string) (*account.User, error) {
			return &account.User{
				ID:           userID,
				Email:        "a@x.com",
				FullName:     "Alice",
				PasswordHash: string(hash),
			}, nil
		},
	}
	svc, issuer := newService(repo)

	result, err := svc.Login(context.Background(), "a@x.com", "Pw1!")
	require.NoError(t, err)
	require.True(t, result.OK())

	assert.Equal(t, userID, result.User.UserID)
	assert.Equal(t, "Alice", result.User.FullName)

	claims, err := issuer.Parse(result.User.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Pw1!"), testBcryptCost)
	require.NoError(t, err)

	known := &mockRepo{
		getByEmailFn: func(ctx context.Context, email string) (*account.User, error) {
			return &account.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: string(hash)}, nil
		},
	}
	unknown := &mockRepo{
		getByEmailFn: func(ctx context.Context, email string) (*account.User, error) {
			return nil, account.ErrUserNotFound
		},
	}

	knownSvc, _ := newService(known)
	unknownSvc, _ := newService(unknown)

	_, wrongPassErr := knownSvc.Login(context.Background(), "a@x.com", "wrong")
	_, noUserErr := unknownSvc.Login(context.Background(), "missing@x.com", "Pw1!")

	// Wrong password and unknown email must be indistinguishable.
	assert.ErrorIs(t, wrongPassErr, account.ErrInvalidCredentials)
	assert.ErrorIs(t, noUserErr, account.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
}

// --- Logout Tests ---

func TestLogout_NoError(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&mockRepo{})
	assert.NoError(t, svc.Logout(context.Background()))
}
