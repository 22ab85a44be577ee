package model

import (
	"bytes"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Outpoint identifies a single output of a transaction. It is a value type and can be used
// directly as a map key.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

func NewOutpoint(txID chainhash.Hash, index uint32) Outpoint {
	return Outpoint{TxID: txID, Index: index}
}

// Compare orders outpoints by the raw bytes of the transaction hash and then by index.
// It returns -1, 0 or 1.
func (o Outpoint) Compare(other Outpoint) int {
	if c := bytes.Compare(o.TxID[:], other.TxID[:]); c != 0 {
		return c
	}

	switch {
	case o.Index < other.Index:
		return -1
	case o.Index > other.Index:
		return 1
	default:
		return 0
	}
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}

// Output is a value locked to the holder of the private key for Address.
type Output struct {
	// Value in base units. Negative values are representable so that they can be rejected.
	Value int64

	// Address is the serialized public key of the recipient.
	Address []byte
}

func NewOutput(value int64, address []byte) *Output {
	return &Output{
		Value:   value,
		Address: address,
	}
}

// Clone returns a copy of o that shares no memory with it.
func (o *Output) Clone() *Output {
	if o == nil {
		return nil
	}

	clone := &Output{Value: o.Value}
	if o.Address != nil {
		clone.Address = append(make([]byte, 0, len(o.Address)), o.Address...)
	}

	return clone
}

// Input spends the output identified by PrevTxHash and OutputIndex.
type Input struct {
	PrevTxHash  chainhash.Hash
	OutputIndex uint32
	Signature   []byte
}

func (i *Input) Outpoint() Outpoint {
	return Outpoint{TxID: i.PrevTxHash, Index: i.OutputIndex}
}
