package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
		Issuer:               "task-api",
		BcryptCost:           4,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(t *testing.T, cfg config.AuthConfig, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACJWTService(cfg, fixedClock(now))
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.AuthConfig)
		wantErr string
	}{
		{"short secret", func(c *config.AuthConfig) { c.JWTSecret = "short" }, "at least 32 characters"},
		{"zero lifetime", func(c *config.AuthConfig) { c.TokenLifetimeMinutes = 0 }, "token lifetime"},
		{"negative skew", func(c *config.AuthConfig) { c.ClockSkewSeconds = -1 }, "clock skew"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testAuthConfig()
			tt.mutate(&cfg)

			svc, err := NewJWTService(cfg)

			assert.Nil(t, svc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testAuthConfig(), now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", claims.Subject)
	assert.Equal(t, "task-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testAuthConfig(), time.Now())
	ctx := context.Background()

	first, err := svc.GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)
	second, err := svc.GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "jti makes every token distinct")
}

func TestGenerateToken_RequiresSubject(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testAuthConfig(), time.Now())
	_, err := svc.GenerateToken(context.Background(), "")
	assert.Error(t, err)
}

func TestValidateToken_Expiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(time.Hour)

	skewed := testAuthConfig()
	skewed.ClockSkewSeconds = 120

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		at      time.Time
		wantErr error
	}{
		{"before expiry", testAuthConfig(), expiry.Add(-time.Second), nil},
		{"at expiry", testAuthConfig(), expiry, ErrExpiredToken},
		{"one second past expiry", testAuthConfig(), expiry.Add(time.Second), ErrExpiredToken},
		{"long past expiry", testAuthConfig(), expiry.Add(24 * time.Hour), ErrExpiredToken},
		{"within configured skew", skewed, expiry.Add(90 * time.Second), nil},
		{"past configured skew", skewed, expiry.Add(3 * time.Minute), ErrExpiredToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := newTestService(t, tt.cfg, issued).GenerateToken(context.Background(), "jo@example.com")
			require.NoError(t, err)

			claims, err := newTestService(t, tt.cfg, tt.at).ValidateToken(context.Background(), token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "jo@example.com", claims.Subject)
				return
			}
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidToken, "expiry is a kind of invalid token")
		})
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := newTestService(t, testAuthConfig(), now)
	ctx := context.Background()

	valid, err := svc.GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)

	otherKeyCfg := testAuthConfig()
	otherKeyCfg.JWTSecret = strings.Repeat("k", 40)
	otherKey, err := newTestService(t, otherKeyCfg, now).GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)

	otherIssuerCfg := testAuthConfig()
	otherIssuerCfg.Issuer = "someone-else"
	otherIssuer, err := newTestService(t, otherIssuerCfg, now).GenerateToken(ctx, "jo@example.com")
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   "jo@example.com",
		Issuer:    "task-api",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "jo@example.com",
		Issuer:  "task-api",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Swap the payload for one naming another account, keeping the signature.
	parts := strings.Split(valid, ".")
	forgedPayload := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"sub":"mallory@example.com","iss":"task-api","exp":4102444800}`))
	tampered := parts[0] + "." + forgedPayload + "." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"tampered payload", tampered},
		{"signed with other key", otherKey},
		{"other issuer", otherIssuer},
		{"HS512 algorithm", hs512},
		{"none algorithm", none},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := svc.ValidateToken(ctx, tt.token)

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
