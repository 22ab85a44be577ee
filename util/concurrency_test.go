package util

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestSafeSetLimit(t *testing.T) {
	t.Run("valid positive limit", func(t *testing.T) {
		g := &errgroup.Group{}

		assert.NotPanics(t, func() {
			SafeSetLimit(g, 1)
			SafeSetLimit(g, 10)
		})
	})

	t.Run("zero limit panics", func(t *testing.T) {
		g := &errgroup.Group{}

		assert.PanicsWithValue(t, "limit cannot be 0", func() {
			SafeSetLimit(g, 0)
		})
	})
}

func TestResolveConcurrency(t *testing.T) {
	assert.Equal(t, 0, ResolveConcurrency(0))
	assert.Equal(t, 4, ResolveConcurrency(4))
	assert.Equal(t, runtime.NumCPU(), ResolveConcurrency(-1))
}
