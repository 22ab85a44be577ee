package model

import (
	"bytes"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTx(t *testing.T) *Transaction {
	t.Helper()

	tx := NewTransaction()
	tx.AddInput(chainhash.HashH([]byte("prev-1")), 0)
	tx.AddInput(chainhash.HashH([]byte("prev-2")), 3)
	tx.AddOutput(7, []byte{0x02, 0x01})
	tx.AddOutput(3, []byte{0x03, 0x02})

	return tx
}

func TestTransaction_Finalize(t *testing.T) {
	t.Run("hash is double sha256 of bytes", func(t *testing.T) {
		tx := newTestTx(t)
		tx.SetSignature(0, []byte("sig0"))
		tx.SetSignature(1, []byte("sig1"))
		tx.Finalize()

		require.True(t, tx.IsFinalized())
		assert.Equal(t, chainhash.DoubleHashH(tx.Bytes()), tx.Hash())
		assert.Equal(t, tx.Hash().String(), tx.String())
	})

	t.Run("finalize is idempotent", func(t *testing.T) {
		tx := newTestTx(t).Finalize()
		hash := tx.Hash()

		assert.Equal(t, hash, tx.Finalize().Hash())
	})

	t.Run("mutation after finalize panics", func(t *testing.T) {
		tx := newTestTx(t).Finalize()

		assert.Panics(t, func() { tx.AddInput(chainhash.Hash{}, 0) })
		assert.Panics(t, func() { tx.AddOutput(1, nil) })
		assert.Panics(t, func() { tx.SetSignature(0, []byte("late")) })
	})

	t.Run("hash before finalize panics", func(t *testing.T) {
		tx := newTestTx(t)

		assert.Panics(t, func() { _ = tx.Hash() })
		assert.Equal(t, "<unfinalized>", tx.String())
	})
}

func TestTransaction_HashDependsOnContent(t *testing.T) {
	a := newTestTx(t).Finalize()
	b := newTestTx(t).Finalize()
	assert.Equal(t, a.Hash(), b.Hash())

	c := newTestTx(t)
	c.SetSignature(0, []byte("sig"))
	c.Finalize()
	assert.NotEqual(t, a.Hash(), c.Hash())

	d := newTestTx(t)
	d.AddOutput(0, nil)
	d.Finalize()
	assert.NotEqual(t, a.Hash(), d.Hash())
}

func TestTransaction_SigningPayload(t *testing.T) {
	t.Run("excludes signatures", func(t *testing.T) {
		unsigned := newTestTx(t)
		payload0 := unsigned.SigningPayload(0)
		payload1 := unsigned.SigningPayload(1)

		unsigned.SetSignature(0, []byte("signature-zero"))
		unsigned.SetSignature(1, []byte("signature-one"))

		assert.Equal(t, payload0, unsigned.SigningPayload(0))
		assert.Equal(t, payload1, unsigned.SigningPayload(1))
	})

	t.Run("binds input index", func(t *testing.T) {
		tx := newTestTx(t)

		assert.NotEqual(t, tx.SigningPayload(0), tx.SigningPayload(1))
		assert.Equal(t, []byte{0, 0, 0, 0}, tx.SigningPayload(0)[len(tx.SigningPayload(0))-4:])
		assert.Equal(t, []byte{1, 0, 0, 0}, tx.SigningPayload(1)[len(tx.SigningPayload(1))-4:])
	})

	t.Run("covers outputs", func(t *testing.T) {
		a := newTestTx(t)
		b := newTestTx(t)
		b.AddOutput(1, []byte{0x01})

		assert.NotEqual(t, a.SigningPayload(0), b.SigningPayload(0))
	})

	t.Run("out of range panics", func(t *testing.T) {
		tx := newTestTx(t)

		assert.Panics(t, func() { tx.SigningPayload(2) })
		assert.Panics(t, func() { tx.SigningPayload(-1) })
	})
}

func TestTransaction_Bytes(t *testing.T) {
	tx := NewTransaction()
	prev := chainhash.HashH([]byte("prev"))
	tx.AddInput(prev, 1)
	tx.SetSignature(0, []byte{0xaa, 0xbb})
	tx.AddOutput(-1, []byte{0xcc})

	expected := make([]byte, 0, 64)
	expected = append(expected, 0x01)
	expected = append(expected, prev[:]...)
	expected = append(expected, 0x01, 0x00, 0x00, 0x00)
	expected = append(expected, 0x02, 0xaa, 0xbb)
	expected = append(expected, 0x01)
	expected = append(expected, bytes.Repeat([]byte{0xff}, 8)...)
	expected = append(expected, 0x01, 0xcc)

	assert.Equal(t, expected, tx.Bytes())
}

func TestTransaction_Outpoints(t *testing.T) {
	tx := newTestTx(t)

	assert.Equal(t, NewOutpoint(chainhash.HashH([]byte("prev-2")), 3), tx.InputOutpoint(1))
	assert.Panics(t, func() { tx.OutputOutpoint(0) })

	tx.Finalize()

	assert.Equal(t, Outpoint{TxID: tx.Hash(), Index: 1}, tx.OutputOutpoint(1))
	assert.Panics(t, func() { tx.OutputOutpoint(2) })
	assert.Equal(t, 2, tx.NumInputs())
	assert.Equal(t, 2, tx.NumOutputs())
	assert.Equal(t, int64(7), tx.Output(0).Value)
}

func TestTransaction_JSON(t *testing.T) {
	tx := newTestTx(t)
	tx.SetSignature(0, []byte{0x30, 0x44})
	tx.Finalize()

	data, err := tx.MarshalJSON()
	require.NoError(t, err)

	decoded := &Transaction{}
	require.NoError(t, decoded.UnmarshalJSON(data))

	assert.Equal(t, tx.Hash(), decoded.Hash())
	assert.Equal(t, tx.Bytes(), decoded.Bytes())

	t.Run("txid mismatch", func(t *testing.T) {
		other := newTestTx(t).Finalize()

		var tj transactionJSON
		require.NoError(t, json.Unmarshal(data, &tj))
		tj.TxID = other.Hash().String()

		tampered, err := json.Marshal(tj)
		require.NoError(t, err)

		require.Error(t, (&Transaction{}).UnmarshalJSON(tampered))
	})

	t.Run("bad hex", func(t *testing.T) {
		err := (&Transaction{}).UnmarshalJSON([]byte(`{"inputs":[{"prevTxId":"zz","outputIndex":0}],"outputs":[]}`))
		require.Error(t, err)
	})

	t.Run("missing prevTxId", func(t *testing.T) {
		err := (&Transaction{}).UnmarshalJSON([]byte(`{"inputs":[{"outputIndex":0}],"outputs":[{"value":1,"address":"02"}]}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
		assert.Contains(t, err.Error(), "missing prevTxId")
	})
}
