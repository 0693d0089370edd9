package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := newTTLCache(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.set("k", "v")
	v, ok := c.get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)

	// Still fresh at the edge of the window.
	c.now = func() time.Time { return base.Add(time.Minute) }
	_, ok = c.get("k")
	require.True(t, ok)

	// Past the window the entry is evicted.
	c.now = func() time.Time { return base.Add(time.Minute + time.Second) }
	_, ok = c.get("k")
	require.False(t, ok)

	// And stays gone even if the clock moves back.
	c.now = func() time.Time { return base }
	_, ok = c.get("k")
	require.False(t, ok)
}

func TestTTLCacheDisabled(t *testing.T) {
	c := newTTLCache(0)
	c.set("k", "v")
	_, ok := c.get("k")
	require.False(t, ok)
}
