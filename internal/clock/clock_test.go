package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSource(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestClock_Tick_UsesWallTime(t *testing.T) {
	c := NewWithSource(fixedSource(1000))
	assert.Equal(t, int64(1000), c.Tick())
}

func TestClock_Tick_MonotonicWhenWallTimeStalls(t *testing.T) {
	c := NewWithSource(fixedSource(1000))

	ts1 := c.Tick()
	ts2 := c.Tick()
	ts3 := c.Tick()

	// Физическое время не изменилось, но метки строго возрастают
	assert.Equal(t, int64(1000), ts1)
	assert.Equal(t, int64(1001), ts2)
	assert.Equal(t, int64(1002), ts3)
}

func TestClock_Tick_MonotonicWhenWallTimeGoesBack(t *testing.T) {
	now := int64(5000)
	c := NewWithSource(func() time.Time { return time.UnixMilli(now) })

	first := c.Tick()
	now = 3000
	second := c.Tick()

	assert.Greater(t, second, first)
}

func TestClock_Observe(t *testing.T) {
	tests := []struct {
		name     string
		wall     int64
		observed int64
		expected int64
	}{
		{
			name:     "observed ahead of wall time",
			wall:     100,
			observed: 500,
			expected: 501,
		},
		{
			name:     "observed behind wall time",
			wall:     1000,
			observed: 500,
			expected: 1000,
		},
		{
			name:     "observed equal to wall time",
			wall:     700,
			observed: 700,
			expected: 701,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewWithSource(fixedSource(tt.wall))
			c.Observe(tt.observed)
			assert.Equal(t, tt.expected, c.Tick())
		})
	}
}

func TestClock_Observe_NeverMovesBackwards(t *testing.T) {
	c := NewWithSource(fixedSource(0))
	c.Observe(100)
	c.Observe(50)
	assert.Equal(t, int64(100), c.Last())
}

func TestClock_Concurrency(t *testing.T) {
	c := NewWithSource(fixedSource(1))

	const goroutines = 50
	results := make(chan int64, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- c.Tick()
		}()
	}
	wg.Wait()
	close(results)

	// Все метки уникальны
	seen := make(map[int64]struct{}, goroutines)
	for ts := range results {
		_, dup := seen[ts]
		require.False(t, dup, "duplicate timestamp %d", ts)
		seen[ts] = struct{}{}
	}
	assert.Equal(t, int64(goroutines), c.Last())
}
