package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterWindow(t *testing.T) {
	l := NewMemoryLimiter(3, 100*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
	}

	res, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// Otra key no comparte el contador.
	other, err := l.Allow(ctx, "ip:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	time.Sleep(120 * time.Millisecond)
	res, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryLimiterEvictsStaleKeys(t *testing.T) {
	l := NewMemoryLimiter(3, 50*time.Millisecond)
	ctx := context.Background()

	for _, key := range []string{"ip:a", "ip:b", "ip:c"} {
		_, err := l.Allow(ctx, key)
		require.NoError(t, err)
	}

	time.Sleep(60 * time.Millisecond)

	// un hit cualquiera tras vencer la ventana barre las keys viejas
	_, err := l.Allow(ctx, "ip:d")
	require.NoError(t, err)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.starts, 1)
	assert.Len(t, l.hits, 1)
}
