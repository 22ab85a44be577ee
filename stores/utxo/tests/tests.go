// Package tests contains a test suite shared by all utxo pool implementations.
package tests

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	TXHash    = chainhash.HashH([]byte("tests-tx"))
	TXHash2   = chainhash.HashH([]byte("tests-tx-2"))
	Outpoint0 = model.NewOutpoint(TXHash, 0)
	Outpoint1 = model.NewOutpoint(TXHash, 1)
	Outpoint2 = model.NewOutpoint(TXHash2, 0)
	Output0   = model.NewOutput(10, []byte{0x02, 0x0a})
	Output1   = model.NewOutput(20, []byte{0x02, 0x0b})
	Output2   = model.NewOutput(0, []byte{0x02, 0x0c})
)

func Store(t *testing.T, db utxo.Interface) {
	require.Equal(t, 0, db.Len())
	require.False(t, db.Contains(Outpoint0))

	_, err := db.Get(Outpoint0)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrUtxoNotFound))

	db.Set(Outpoint0, Output0)
	db.Set(Outpoint1, Output1)

	require.Equal(t, 2, db.Len())
	require.True(t, db.Contains(Outpoint0))
	require.True(t, db.Contains(Outpoint1))
	require.False(t, db.Contains(Outpoint2))

	output, err := db.Get(Outpoint1)
	require.NoError(t, err)
	assert.Equal(t, Output1, output)

	// overwrite
	db.Set(Outpoint1, Output2)
	require.Equal(t, 2, db.Len())

	output, err = db.Get(Outpoint1)
	require.NoError(t, err)
	assert.Equal(t, Output2, output)
}

func Delete(t *testing.T, db utxo.Interface) {
	db.Set(Outpoint0, Output0)
	db.Set(Outpoint1, Output1)

	db.Delete(Outpoint0)
	require.False(t, db.Contains(Outpoint0))
	require.True(t, db.Contains(Outpoint1))
	require.Equal(t, 1, db.Len())

	// deleting an absent outpoint is a no-op
	db.Delete(Outpoint0)
	db.Delete(Outpoint2)
	require.Equal(t, 1, db.Len())
}

func Clone(t *testing.T, db utxo.Interface) {
	db.Set(Outpoint0, Output0)
	db.Set(Outpoint1, Output1)

	clone := db.Clone()
	require.Equal(t, db.Len(), clone.Len())

	clone.Delete(Outpoint0)
	clone.Set(Outpoint2, Output2)

	require.True(t, db.Contains(Outpoint0))
	require.False(t, db.Contains(Outpoint2))
	require.Equal(t, 2, db.Len())

	require.False(t, clone.Contains(Outpoint0))
	require.True(t, clone.Contains(Outpoint2))

	db.Delete(Outpoint1)
	require.True(t, clone.Contains(Outpoint1))
}

// Isolation checks that outputs handed to or returned by the pool, or by a clone of it, never
// alias the pool's own entries.
func Isolation(t *testing.T, db utxo.Interface) {
	original := model.NewOutput(10, []byte{0x02, 0x0a})
	db.Set(Outpoint0, original)

	original.Value = 1000000
	original.Address[1] = 0xff

	output, err := db.Get(Outpoint0)
	require.NoError(t, err)
	assert.Equal(t, Output0, output)

	output.Value = 42
	output.Address[0] = 0x03

	output, err = db.Get(Outpoint0)
	require.NoError(t, err)
	assert.Equal(t, Output0, output)

	db.ForEach(func(_ model.Outpoint, output *model.Output) bool {
		output.Value = 7
		return true
	})

	clone := db.Clone()

	cloned, err := clone.Get(Outpoint0)
	require.NoError(t, err)
	assert.Equal(t, Output0, cloned)

	clone.ForEach(func(_ model.Outpoint, output *model.Output) bool {
		output.Address[1] = 0xee
		return true
	})

	clone.Set(Outpoint0, model.NewOutput(5, nil))

	output, err = db.Get(Outpoint0)
	require.NoError(t, err)
	assert.Equal(t, Output0, output)
}

func ForEach(t *testing.T, db utxo.Interface) {
	db.Set(Outpoint0, Output0)
	db.Set(Outpoint1, Output1)
	db.Set(Outpoint2, Output2)

	seen := make(map[model.Outpoint]*model.Output)

	db.ForEach(func(outpoint model.Outpoint, output *model.Output) bool {
		seen[outpoint] = output
		return true
	})

	require.Len(t, seen, 3)
	assert.Equal(t, Output0, seen[Outpoint0])
	assert.Equal(t, Output2, seen[Outpoint2])

	count := 0

	db.ForEach(func(_ model.Outpoint, _ *model.Output) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)
}

func Snapshot(t *testing.T, db utxo.Interface) {
	db.Set(Outpoint2, Output2)
	db.Set(Outpoint1, Output1)
	db.Set(Outpoint0, Output0)

	snapshot := utxo.Snapshot(db)
	require.Len(t, snapshot, 3)

	for i := 1; i < len(snapshot); i++ {
		assert.Negative(t, snapshot[i-1].Outpoint.Compare(snapshot[i].Outpoint))
	}
}
