package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetDelete(t *testing.T) {
	c := New()

	_, found := c.Get("a")
	assert.False(t, found)

	c.Set("a", 1)
	x, found := c.Get("a")
	assert.True(t, found)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, c.Len())

	c.Set("a", 2)
	x, _ = c.Get("a")
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, c.Len())

	c.Delete("a")
	_, found = c.Get("a")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}
