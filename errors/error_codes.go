package errors

import "strconv"

// ERR is the error code carried by every *Error.
type ERR int32

// Codes are grouped by range: 0-9 generic, 10-29 transaction, 30-39 utxo.
const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 2
	ERR_PROCESSING       ERR = 3
	ERR_CONFIGURATION    ERR = 4
	ERR_CONTEXT_CANCELED ERR = 5
	ERR_ERROR            ERR = 9

	ERR_TX_INVALID              ERR = 10
	ERR_TX_MISSING_INPUT        ERR = 11
	ERR_TX_INVALID_SIGNATURE    ERR = 12
	ERR_TX_INVALID_DOUBLE_SPEND ERR = 13
	ERR_TX_NEGATIVE_OUTPUT      ERR = 14
	ERR_TX_INSUFFICIENT_INPUTS  ERR = 15

	ERR_UTXO_NOT_FOUND ERR = 30
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	2:  "NOT_FOUND",
	3:  "PROCESSING",
	4:  "CONFIGURATION",
	5:  "CONTEXT_CANCELED",
	9:  "ERROR",
	10: "TX_INVALID",
	11: "TX_MISSING_INPUT",
	12: "TX_INVALID_SIGNATURE",
	13: "TX_INVALID_DOUBLE_SPEND",
	14: "TX_NEGATIVE_OUTPUT",
	15: "TX_INSUFFICIENT_INPUTS",
	30: "UTXO_NOT_FOUND",
}

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}
