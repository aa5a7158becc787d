package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman-io/taskman/internal/auth"
)

const testSecret = "test-signing-secret"

func TestIssue_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer(testSecret, time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer(testSecret, time.Hour)
	other := auth.NewIssuer("some-other-secret", time.Hour)

	token, err := issuer.Issue(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer(testSecret, time.Hour)

	_, err := issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_RejectsOtherSigningMethods(t *testing.T) {
	t.Parallel()

	issuer := auth.NewIssuer(testSecret, time.Hour)

	// Token signed with HS384 and the same secret must not validate,
	// only HS256 is accepted.
	claims := &auth.Claims{
		UserID: uuid.New().String(),
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
