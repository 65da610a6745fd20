package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-crm/backend/internal/auth"
	"github.com/pkordes/travel-crm/backend/internal/domain"
)

var principal = domain.Principal{ID: 7, Username: "fran_dev", Email: "fran@example.com", Role: domain.RoleStaff}

// fixedClock returns a clock that can be moved forward by the test.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := auth.NewTokenService("secret", 24*time.Hour)

	token, err := svc.Issue(principal)
	require.NoError(t, err)

	got, err := svc.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestTokenService_ValidJustBeforeExpiry(t *testing.T) {
	clock, advance := fixedClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	svc := auth.NewTokenService("secret", 24*time.Hour, auth.WithClock(clock))

	token, err := svc.Issue(principal)
	require.NoError(t, err)

	advance(23*time.Hour + 59*time.Minute)
	_, err = svc.Verify(token)

	assert.NoError(t, err)
}

func TestTokenService_ExpiredAfter24h(t *testing.T) {
	clock, advance := fixedClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	svc := auth.NewTokenService("secret", 24*time.Hour, auth.WithClock(clock))

	token, err := svc.Issue(principal)
	require.NoError(t, err)

	advance(24*time.Hour + time.Second)
	_, err = svc.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenService("secret", time.Hour).Issue(principal)
	require.NoError(t, err)

	_, err = auth.NewTokenService("other-secret", time.Hour).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_Malformed(t *testing.T) {
	_, err := auth.NewTokenService("secret", time.Hour).Verify("not.a.jwt")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "travel-crm",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokenService("secret", time.Hour).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	clock, advance := fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := auth.NewTokenService("secret", 0, auth.WithClock(clock))

	token, err := svc.Issue(principal)
	require.NoError(t, err)

	advance(auth.DefaultTokenTTL + time.Minute)
	_, err = svc.Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
