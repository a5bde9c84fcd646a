package breaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindow_PushAndCount(t *testing.T) {
	w := newSlidingWindow(3)

	assert.Equal(t, 0, w.size())
	assert.Equal(t, 0, w.failureCount())

	w.push(false)
	w.push(true)
	w.push(false)

	assert.Equal(t, 3, w.size())
	assert.Equal(t, 2, w.failureCount())
}

func TestSlidingWindow_EvictsOldest(t *testing.T) {
	w := newSlidingWindow(3)

	w.push(false)
	w.push(false)
	w.push(false)
	assert.Equal(t, 3, w.failureCount())

	// three successes evict the three failures one by one
	w.push(true)
	assert.Equal(t, 2, w.failureCount())
	w.push(true)
	assert.Equal(t, 1, w.failureCount())
	w.push(true)
	assert.Equal(t, 0, w.failureCount())

	assert.Equal(t, 3, w.size())
}

func TestSlidingWindow_CapacityOne(t *testing.T) {
	w := newSlidingWindow(1)

	w.push(false)
	assert.Equal(t, 1, w.failureCount())

	w.push(true)
	assert.Equal(t, 0, w.failureCount())
	assert.Equal(t, 1, w.size())
}

func TestSlidingWindow_Reset(t *testing.T) {
	w := newSlidingWindow(4)

	w.push(false)
	w.push(false)
	w.reset()

	assert.Equal(t, 0, w.size())
	assert.Equal(t, 0, w.failureCount())

	// usable again after reset
	w.push(false)
	assert.Equal(t, 1, w.failureCount())
}
