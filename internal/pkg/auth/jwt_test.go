package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "claimboard-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateToken(42, "proctor")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "proctor", claims.Role)
	assert.Equal(t, "claimboard-test", claims.Issuer)
}

func TestJWTService_Rejections(t *testing.T) {
	svc := newTestService()

	t.Run("expired token", func(t *testing.T) {
		token, _, err := svc.GenerateToken(1, "student")
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ValidateAndExtractClaims(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
		token, _, err := other.GenerateToken(1, "student")
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing role", func(t *testing.T) {
		token, _, err := svc.GenerateToken(1, "")
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer abc.def", want: "abc.def"},
		{name: "raw token", header: "abc.def", want: "abc.def"},
		{name: "empty", header: "", wantErr: true},
		{name: "bearer without token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
