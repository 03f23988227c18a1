package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanups_RunInReverse(t *testing.T) {
	var order []string
	var undo cleanups
	undo.add(func() { order = append(order, "db") })
	undo.add(func() { order = append(order, "redis") })

	undo.run()
	assert.Equal(t, []string{"redis", "db"}, order)
}

func TestCleanups_Empty(t *testing.T) {
	var undo cleanups
	assert.NotPanics(t, undo.run)
}
