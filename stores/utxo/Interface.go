// Package utxo defines the pool of unspent transaction outputs consulted and updated by the
// transaction handler.
//
// A pool maps an Outpoint to the Output it identifies. An entry present in the pool means the
// output is unspent as far as the pool has seen. Implementations are not safe for concurrent
// use; a pool is owned by exactly one handler at a time.
//
// A pool never shares an Output with its callers: Set stores a copy, and Get and ForEach hand
// out copies, so mutating an Output never changes a pool.
package utxo

import (
	"sort"

	"github.com/bsv-blockchain/txhandler/model"
)

type Interface interface {
	// Contains reports whether outpoint is unspent in the pool.
	Contains(outpoint model.Outpoint) bool

	// Get returns the output for outpoint, or errors.ErrUtxoNotFound when it is absent.
	Get(outpoint model.Outpoint) (*model.Output, error)

	// Set inserts or overwrites the output for outpoint.
	Set(outpoint model.Outpoint, output *model.Output)

	// Delete removes outpoint. Deleting an absent outpoint is a no-op.
	Delete(outpoint model.Outpoint)

	// Clone returns a deep copy. Later changes to either pool are not visible in the other.
	Clone() Interface

	Len() int

	// ForEach calls fn for every entry in an unspecified order until fn returns false.
	ForEach(fn func(outpoint model.Outpoint, output *model.Output) bool)
}

// Snapshot returns the entries of pool sorted by outpoint.
func Snapshot(pool Interface) []model.UTXO {
	utxos := make([]model.UTXO, 0, pool.Len())

	pool.ForEach(func(outpoint model.Outpoint, output *model.Output) bool {
		utxos = append(utxos, model.UTXO{Outpoint: outpoint, Output: output})
		return true
	})

	sort.Slice(utxos, func(i, j int) bool {
		return utxos[i].Outpoint.Compare(utxos[j].Outpoint) < 0
	})

	return utxos
}
