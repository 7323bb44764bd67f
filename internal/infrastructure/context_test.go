package infrastructure

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRunID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRunID(ctx))
	assert.Empty(t, GetRunID(nil)) //nolint:staticcheck

	ctx = WithRunID(ctx, "abc")
	assert.Equal(t, "abc", GetRunID(ctx))
	assert.Equal(t, "abc", GetRunID(EnsureRunID(ctx)))
}

func TestEnsureRunID_Generates(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	id := GetRunID(ctx)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRunID())
}
