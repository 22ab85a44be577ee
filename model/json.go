package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type inputJSON struct {
	PrevTxID    string `json:"prevTxId"`
	OutputIndex uint32 `json:"outputIndex"`
	Signature   string `json:"signature,omitempty"`
}

type outputJSON struct {
	Value   int64  `json:"value"`
	Address string `json:"address"`
}

type transactionJSON struct {
	TxID    string       `json:"txid,omitempty"`
	Inputs  []inputJSON  `json:"inputs"`
	Outputs []outputJSON `json:"outputs"`
}

type utxoJSON struct {
	TxID    string `json:"txid"`
	Index   uint32 `json:"index"`
	Value   int64  `json:"value"`
	Address string `json:"address"`
}

// UTXO pairs an outpoint with the output it identifies.
type UTXO struct {
	Outpoint Outpoint
	Output   *Output
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	tj := transactionJSON{
		Inputs:  make([]inputJSON, 0, len(tx.inputs)),
		Outputs: make([]outputJSON, 0, len(tx.outputs)),
	}

	if tx.hash != nil {
		tj.TxID = tx.hash.String()
	}

	for _, in := range tx.inputs {
		tj.Inputs = append(tj.Inputs, inputJSON{
			PrevTxID:    in.PrevTxHash.String(),
			OutputIndex: in.OutputIndex,
			Signature:   hex.EncodeToString(in.Signature),
		})
	}

	for _, out := range tx.outputs {
		tj.Outputs = append(tj.Outputs, outputJSON{
			Value:   out.Value,
			Address: hex.EncodeToString(out.Address),
		})
	}

	return json.Marshal(tj)
}

// UnmarshalJSON decodes and finalizes the transaction. When the document carries a txid it
// must match the hash of the decoded content.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var tj transactionJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return errors.NewInvalidArgumentError("could not decode transaction", err)
	}

	decoded := NewTransaction()

	for i, in := range tj.Inputs {
		if in.PrevTxID == "" {
			return errors.NewInvalidArgumentError("input %d: missing prevTxId", i)
		}

		prevTxHash, err := chainhash.NewHashFromStr(in.PrevTxID)
		if err != nil {
			return errors.NewInvalidArgumentError("input %d: invalid prevTxId %q", i, in.PrevTxID, err)
		}

		signature, err := hex.DecodeString(in.Signature)
		if err != nil {
			return errors.NewInvalidArgumentError("input %d: invalid signature hex", i, err)
		}

		decoded.AddInput(*prevTxHash, in.OutputIndex)
		decoded.SetSignature(i, signature)
	}

	for i, out := range tj.Outputs {
		address, err := hex.DecodeString(out.Address)
		if err != nil {
			return errors.NewInvalidArgumentError("output %d: invalid address hex", i, err)
		}

		decoded.AddOutput(out.Value, address)
	}

	decoded.Finalize()

	if tj.TxID != "" && tj.TxID != decoded.hash.String() {
		return errors.NewInvalidArgumentError("txid %s does not match transaction content %s", tj.TxID, decoded.hash.String())
	}

	*tx = *decoded

	return nil
}

func (u UTXO) MarshalJSON() ([]byte, error) {
	return json.Marshal(utxoJSON{
		TxID:    u.Outpoint.TxID.String(),
		Index:   u.Outpoint.Index,
		Value:   u.Output.Value,
		Address: hex.EncodeToString(u.Output.Address),
	})
}

func (u *UTXO) UnmarshalJSON(data []byte) error {
	var uj utxoJSON
	if err := json.Unmarshal(data, &uj); err != nil {
		return errors.NewInvalidArgumentError("could not decode utxo", err)
	}

	if uj.TxID == "" {
		return errors.NewInvalidArgumentError("utxo %d: missing txid", uj.Index)
	}

	txID, err := chainhash.NewHashFromStr(uj.TxID)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid utxo txid %q", uj.TxID, err)
	}

	address, err := hex.DecodeString(uj.Address)
	if err != nil {
		return errors.NewInvalidArgumentError("utxo %s:%d: invalid address hex", uj.TxID, uj.Index, err)
	}

	u.Outpoint = NewOutpoint(*txID, uj.Index)
	u.Output = NewOutput(uj.Value, address)

	return nil
}
