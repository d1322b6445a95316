package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)

	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a UUID")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)), "trace IDs should be unique")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	t.Parallel()
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)

	assert.Empty(t, GetTraceID(ctx))
}

func TestIdentityFromContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ctx       context.Context
		wantEmail string
		wantOK    bool
	}{
		{
			name:   "missing",
			ctx:    context.Background(),
			wantOK: false,
		},
		{
			name:      "bound",
			ctx:       WithIdentity(context.Background(), Identity{Email: "jo@x.com"}),
			wantEmail: "jo@x.com",
			wantOK:    true,
		},
		{
			name:   "empty email",
			ctx:    WithIdentity(context.Background(), Identity{}),
			wantOK: false,
		},
		{
			name:   "wrong type",
			ctx:    context.WithValue(context.Background(), IdentityContextKey, "jo@x.com"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity, ok := IdentityFromContext(tt.ctx)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantEmail, identity.Email)
		})
	}
}
