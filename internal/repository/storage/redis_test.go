package storage

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("Connects to a running redis", func(t *testing.T) {
		ctx, st := suite.New(t)

		// When: connecting to the suite's redis
		client, err := NewRedisClient(ctx, st.Addr)

		// Then: the client is usable
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Set(ctx, "key", "value", 0).Err())
	})

	t.Run("Fails when nothing listens", func(t *testing.T) {
		// When: connecting to a closed port
		client, err := NewRedisClient(context.Background(), "127.0.0.1:1")

		// Then: an error is returned
		require.Error(t, err)
		assert.Nil(t, client)
	})
}
