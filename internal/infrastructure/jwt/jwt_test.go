package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signCallerToken(t *testing.T, secret, userID string, roles []string, exp time.Duration) string {
	t.Helper()

	claims := Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_Success(t *testing.T) {
	s := New("super-secret")
	userID := "5f2b0c1d-9d55-4c3e-8f33-0a4f2a1b9c7e"
	roles := []string{"Admin", "User"}

	tok := signCallerToken(t, "super-secret", userID, roles, time.Hour)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, roles, claims.Roles)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestValidateToken_Table(t *testing.T) {
	secret := "super-secret"
	s := New(secret)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signCallerToken(t, secret, "u-1", []string{"User"}, -time.Minute)
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signCallerToken(t, "other-secret", "u-1", []string{"User"}, time.Hour)
			},
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := s.ValidateToken(tt.token(t))
			require.Error(t, err)
			require.Nil(t, claims)
		})
	}
}
