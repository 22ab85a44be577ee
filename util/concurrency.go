package util

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SafeSetLimit sets the limit on an errgroup.Group. It panics if the limit is 0, since
// errgroup.SetLimit(0) would deadlock every call to Go.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}

// ResolveConcurrency maps a configured concurrency to a number of goroutines. Negative values
// mean one goroutine per CPU, 0 means no concurrency.
func ResolveConcurrency(configured int) int {
	if configured < 0 {
		return runtime.NumCPU()
	}

	return configured
}
