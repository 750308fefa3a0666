package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"holidayplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret, 24*time.Hour)

	token, err := issuer.Issue(&domain.User{ID: 7, Email: "pieter@ucll.be", IsOrganiser: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "pieter@ucll.be", claims.Email)
	assert.True(t, claims.IsOrganiser)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	expiredIssuer := &jwtIssuer{
		secret: []byte("secret"),
		expiry: time.Minute,
		now:    func() time.Time { return time.Now().Add(-time.Hour) },
	}

	valid, err := issuer.Issue(&domain.User{ID: 3, Email: "koen@ucll.be"})
	require.NoError(t, err)
	expired, err := expiredIssuer.Issue(&domain.User{ID: 3, Email: "koen@ucll.be"})
	require.NoError(t, err)
	otherSecret, err := NewJWTIssuer("other", time.Hour).Issue(&domain.User{ID: 3, Email: "koen@ucll.be"})
	require.NoError(t, err)
	noEmail, err := issuer.Issue(&domain.User{ID: 3})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    domain.Claim
		wantErr bool
	}{
		{name: "valid", token: valid, want: domain.Claim{Email: "koen@ucll.be", IsOrganiser: false}},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: otherSecret, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
		{name: "missing email", token: noEmail, wantErr: true},
	}

	verifier := NewJWTVerifier("secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTVerifier_rejects_none_algorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{Email: "x@y.z"})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").Verify(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}
