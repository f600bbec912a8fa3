package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalContext(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)

	p := Principal{UserID: uuid.New(), Username: "alice"}
	got, ok := GetPrincipal(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = GetPrincipal(WithPrincipal(context.Background(), Principal{Username: "nobody"}))
	assert.False(t, ok, "nil user ID is not a principal")
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	traceID := GetTraceID(WithTraceID(context.Background(), NewTraceID()))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), traceID)

	assert.NotEqual(t, traceID, NewTraceID())
	assert.Equal(t, "abc", GetTraceID(WithTraceID(context.Background(), "abc")))
}

func TestFallbackTraceID(t *testing.T) {
	assert.Len(t, fallbackTraceID(), TraceIDLength*2)
}
