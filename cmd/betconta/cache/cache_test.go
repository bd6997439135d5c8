package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsFreshValue(t *testing.T) {
	c := New[string](30 * time.Second)
	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestGetMissesExpiredValue(t *testing.T) {
	c := New[string](30 * time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", "v")
	c.now = func() time.Time { return now.Add(31 * time.Second) }
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestValueFreshInsideWindow(t *testing.T) {
	c := New[int](30 * time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", 7)
	c.now = func() time.Time { return now.Add(29 * time.Second) }
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")
	c.Invalidate("k")
	c.Invalidate("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.InvalidateAll()
	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.False(t, okA)
	assert.False(t, okB)
}
