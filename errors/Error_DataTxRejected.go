package errors

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// TxRejectedErrData records which transaction was rejected, by which rule and at which
// input or output position. Index is -1 when the rule applies to the transaction as a whole.
type TxRejectedErrData struct {
	TxID  chainhash.Hash `json:"txid"`
	Rule  string         `json:"rule"`
	Index int            `json:"index"`
}

func (e *TxRejectedErrData) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("tx %s rejected by rule %s", e.TxID, e.Rule)
	}

	return fmt.Sprintf("tx %s rejected by rule %s at index %d", e.TxID, e.Rule, e.Index)
}

func (e *TxRejectedErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte{}
	}

	return data
}

func (e *TxRejectedErrData) GetData(key string) interface{} {
	switch key {
	case "txid":
		return e.TxID
	case "rule":
		return e.Rule
	case "index":
		return e.Index
	default:
		return nil
	}
}

func (e *TxRejectedErrData) SetData(key string, value interface{}) {
	switch key {
	case "rule":
		if s, ok := value.(string); ok {
			e.Rule = s
		}
	case "index":
		if i, ok := value.(int); ok {
			e.Index = i
		}
	}
}

// NewTxRejectedError creates a rule-tagged rejection error. The code must be one of the
// transaction rejection codes.
func NewTxRejectedError(code ERR, txID chainhash.Hash, index int, message string, params ...interface{}) error {
	return NewWithData(code, &TxRejectedErrData{
		TxID:  txID,
		Rule:  code.String(),
		Index: index,
	}, message, params...)
}
