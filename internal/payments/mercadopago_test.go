package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("no token disables payments", func(t *testing.T) {
		client, err := New("")
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("token yields a client", func(t *testing.T) {
		client, err := New("TEST-1234567890")
		require.NoError(t, err)
		require.NotNil(t, client)
	})
}
