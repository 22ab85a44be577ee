package errors

var (
	ErrUnknown              = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument      = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound             = New(ERR_NOT_FOUND, "not found")
	ErrProcessing           = New(ERR_PROCESSING, "error processing")
	ErrConfiguration        = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled      = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrError                = New(ERR_ERROR, "generic error")
	ErrTxInvalid            = New(ERR_TX_INVALID, "tx invalid")
	ErrTxMissingInput       = New(ERR_TX_MISSING_INPUT, "tx spends an output that is not in the utxo pool")
	ErrTxInvalidSignature   = New(ERR_TX_INVALID_SIGNATURE, "tx input signature invalid")
	ErrTxInvalidDoubleSpend = New(ERR_TX_INVALID_DOUBLE_SPEND, "tx invalid double spend")
	ErrTxNegativeOutput     = New(ERR_TX_NEGATIVE_OUTPUT, "tx output value negative")
	ErrTxInsufficientInputs = New(ERR_TX_INSUFFICIENT_INPUTS, "tx output value exceeds input value")
	ErrUtxoNotFound         = New(ERR_UTXO_NOT_FOUND, "utxo not found")
)

// errors initialization functions, rule violations are built with NewTxRejectedError

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewUtxoNotFoundError(message string, params ...interface{}) error {
	return New(ERR_UTXO_NOT_FOUND, message, params...)
}
