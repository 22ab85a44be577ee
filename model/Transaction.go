package model

import (
	"encoding/binary"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
)

// Transaction is an ordered list of inputs and outputs. It is built with AddInput, AddOutput
// and SetSignature and then frozen with Finalize, which computes its hash. Mutating a
// finalized transaction panics.
type Transaction struct {
	inputs  []*Input
	outputs []*Output
	hash    *chainhash.Hash
}

func NewTransaction() *Transaction {
	return &Transaction{
		inputs:  make([]*Input, 0),
		outputs: make([]*Output, 0),
	}
}

func (tx *Transaction) AddInput(prevTxHash chainhash.Hash, outputIndex uint32) {
	tx.mustBeOpen()

	tx.inputs = append(tx.inputs, &Input{
		PrevTxHash:  prevTxHash,
		OutputIndex: outputIndex,
	})
}

func (tx *Transaction) AddOutput(value int64, address []byte) {
	tx.mustBeOpen()

	tx.outputs = append(tx.outputs, NewOutput(value, address))
}

// SetSignature sets the signature of input i. Signatures are not part of the signing
// payload, so inputs can be signed in any order.
func (tx *Transaction) SetSignature(i int, signature []byte) {
	tx.mustBeOpen()
	tx.mustHaveInput(i)

	tx.inputs[i].Signature = signature
}

// Finalize computes the transaction hash and freezes the transaction.
func (tx *Transaction) Finalize() *Transaction {
	if tx.hash == nil {
		hash := chainhash.DoubleHashH(tx.Bytes())
		tx.hash = &hash
	}

	return tx
}

func (tx *Transaction) IsFinalized() bool {
	return tx.hash != nil
}

// Hash returns the content hash of a finalized transaction.
func (tx *Transaction) Hash() chainhash.Hash {
	if tx.hash == nil {
		panic("model: Hash called on a transaction that is not finalized")
	}

	return *tx.hash
}

func (tx *Transaction) String() string {
	if tx.hash == nil {
		return "<unfinalized>"
	}

	return tx.hash.String()
}

func (tx *Transaction) NumInputs() int {
	return len(tx.inputs)
}

func (tx *Transaction) NumOutputs() int {
	return len(tx.outputs)
}

// Input returns input i. The returned value must not be modified.
func (tx *Transaction) Input(i int) *Input {
	tx.mustHaveInput(i)

	return tx.inputs[i]
}

// Output returns output i. The returned value must not be modified.
func (tx *Transaction) Output(i int) *Output {
	if i < 0 || i >= len(tx.outputs) {
		panic(fmt.Sprintf("model: output index %d out of range [0, %d)", i, len(tx.outputs)))
	}

	return tx.outputs[i]
}

func (tx *Transaction) Inputs() []*Input {
	return tx.inputs
}

func (tx *Transaction) Outputs() []*Output {
	return tx.outputs
}

// InputOutpoint returns the outpoint spent by input i.
func (tx *Transaction) InputOutpoint(i int) Outpoint {
	return tx.Input(i).Outpoint()
}

// OutputOutpoint returns the outpoint created for output i once this transaction is accepted.
func (tx *Transaction) OutputOutpoint(i int) Outpoint {
	_ = tx.Output(i)

	index, err := safeconversion.IntToUint32(i)
	if err != nil {
		panic(fmt.Sprintf("model: output index %d does not fit an outpoint: %v", i, err))
	}

	return Outpoint{TxID: tx.Hash(), Index: index}
}

// Bytes returns the canonical serialization of the transaction, including input signatures:
//
//	varint(#inputs) || { prevTxHash(32) | outputIndex(4 LE) | varint(len) | signature }*
//	varint(#outputs) || { value(8 LE) | varint(len) | address }*
func (tx *Transaction) Bytes() []byte {
	return tx.serialize(true, -1)
}

// SigningPayload returns the bytes that the signature of input i must authenticate: the
// transaction serialized without any signatures, followed by the input index (4 LE).
func (tx *Transaction) SigningPayload(i int) []byte {
	tx.mustHaveInput(i)

	return tx.serialize(false, i)
}

func (tx *Transaction) serialize(withSignatures bool, index int) []byte {
	size := 2*9 + len(tx.inputs)*(32+4+9) + len(tx.outputs)*(8+9) + 4
	for _, in := range tx.inputs {
		size += len(in.Signature)
	}

	for _, out := range tx.outputs {
		size += len(out.Address)
	}

	buf := make([]byte, 0, size)

	var b4 [4]byte

	var b8 [8]byte

	buf = append(buf, bt.VarInt(uint64(len(tx.inputs))).Bytes()...)

	for _, in := range tx.inputs {
		buf = append(buf, in.PrevTxHash[:]...)

		binary.LittleEndian.PutUint32(b4[:], in.OutputIndex)
		buf = append(buf, b4[:]...)

		if withSignatures {
			buf = append(buf, bt.VarInt(uint64(len(in.Signature))).Bytes()...)
			buf = append(buf, in.Signature...)
		}
	}

	buf = append(buf, bt.VarInt(uint64(len(tx.outputs))).Bytes()...)

	for _, out := range tx.outputs {
		//nolint:gosec // G115: two's complement encoding of the signed value
		binary.LittleEndian.PutUint64(b8[:], uint64(out.Value))
		buf = append(buf, b8[:]...)

		buf = append(buf, bt.VarInt(uint64(len(out.Address))).Bytes()...)
		buf = append(buf, out.Address...)
	}

	if index >= 0 {
		//nolint:gosec // G115: index is bounded by the number of inputs
		binary.LittleEndian.PutUint32(b4[:], uint32(index))
		buf = append(buf, b4[:]...)
	}

	return buf
}

func (tx *Transaction) mustBeOpen() {
	if tx.hash != nil {
		panic("model: transaction " + tx.hash.String() + " is finalized and cannot be modified")
	}
}

func (tx *Transaction) mustHaveInput(i int) {
	if i < 0 || i >= len(tx.inputs) {
		panic(fmt.Sprintf("model: input index %d out of range [0, %d)", i, len(tx.inputs)))
	}
}
