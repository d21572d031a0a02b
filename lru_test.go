package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	l := NewLRU(2)

	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "", l.Touch("b"))
	// a is now more recent than b
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "b", l.Touch("c"))
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, "a", l.Touch("d"))
	assert.Equal(t, "c", l.Touch("e"))
}

func TestLRUTouchHeadAndTail(t *testing.T) {
	l := NewLRU(3)
	l.Touch("a")
	l.Touch("b")
	l.Touch("c")

	// touching the head is a no-op
	assert.Equal(t, "", l.Touch("c"))
	// touching the tail moves it to the front
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "b", l.Touch("x"))
	assert.Equal(t, "c", l.Touch("y"))
	assert.Equal(t, "a", l.Touch("z"))
}

func TestLRUSizeOne(t *testing.T) {
	l := NewLRU(0)
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "", l.Touch("a"))
	assert.Equal(t, "a", l.Touch("b"))
	assert.Equal(t, 1, l.Len())
}
