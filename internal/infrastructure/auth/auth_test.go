package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/perkloop/perkloop/internal/shared/authorization"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, "")

	issued, err := svc.Issue("user-uuid", authorization.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(900), issued.ExpiresIn)

	claims, err := svc.Verify(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", claims.UserUUID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
	assert.Equal(t, "perkloop", claims.Issuer)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15, "")
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return issuedAt }

	issued, err := svc.Issue("user-uuid", authorization.RoleUser)
	require.NoError(t, err)

	svc.clock = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = svc.Verify(issued.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", 15, "")

	other := NewJWTService("other-secret", 15, "")
	foreign, err := other.Issue("user-uuid", authorization.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Verify(foreign.AccessToken)
	assert.Error(t, err, "wrong secret")

	otherIssuer := NewJWTService("test-secret", 15, "someone-else")
	wrongIssuer, err := otherIssuer.Issue("user-uuid", authorization.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Verify(wrongIssuer.AccessToken)
	assert.Error(t, err, "wrong issuer")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserUUID: "user-uuid"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.Error(t, err, "alg none")

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("correct horse", "not-a-hash"))
}

func TestNewBcryptPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
}
