package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), mr.Addr())
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}

func TestNewReturnsUsableClientWhenPingFails(t *testing.T) {
	client, err := New(context.Background(), "127.0.0.1:1")
	require.Error(t, err)
	// Callers defer Close unconditionally, so the client must never be nil.
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}
