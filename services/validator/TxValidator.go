package validator

import (
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	"github.com/bsv-blockchain/txhandler/ulogger"
)

// TxValidatorI defines the single transaction validity check
type TxValidatorI interface {
	// IsValid reports whether tx is valid against pool
	IsValid(tx *model.Transaction, pool utxo.Interface) bool

	// ValidateTransaction returns nil when tx is valid against pool, otherwise a rule tagged
	// rejection error
	ValidateTransaction(tx *model.Transaction, pool utxo.Interface) error
}

// TxValidator checks a transaction against a utxo pool. The pool is only read.
type TxValidator struct {
	logger   ulogger.Logger
	verifier SignatureVerifier
}

func NewTxValidator(logger ulogger.Logger, verifier SignatureVerifier) *TxValidator {
	if verifier == nil {
		panic("validator: signature verifier is nil")
	}

	initPrometheusMetrics()

	return &TxValidator{
		logger:   logger,
		verifier: verifier,
	}
}

func (tv *TxValidator) IsValid(tx *model.Transaction, pool utxo.Interface) bool {
	return tv.ValidateTransaction(tx, pool) == nil
}

// ValidateTransaction checks, in this order and stopping at the first failure:
//  1. every input spends an outpoint present in pool
//  2. every input signature authenticates the input's signing payload under the address of
//     the spent output
//  3. no outpoint is spent twice by the transaction
//  4. no output value is negative
//  5. the sum of the spent output values covers the sum of the output values
//
// Rules 1 to 3 are evaluated for one input before moving to the next.
func (tv *TxValidator) ValidateTransaction(tx *model.Transaction, pool utxo.Interface) error {
	start := time.Now()
	defer func() {
		prometheusValidateTransaction.Observe(time.Since(start).Seconds())
	}()

	return tv.validate(tx, pool, tv.verifier)
}

func (tv *TxValidator) validate(tx *model.Transaction, pool utxo.Interface, verifier SignatureVerifier) error {
	if tx == nil {
		panic("validator: transaction is nil")
	}

	if pool == nil {
		panic("validator: utxo pool is nil")
	}

	var txID chainhash.Hash
	if tx.IsFinalized() {
		txID = tx.Hash()
	}

	claimed := make(map[model.Outpoint]struct{}, tx.NumInputs())

	var (
		inputSum int64
		ok       bool
	)

	for i, input := range tx.Inputs() {
		outpoint := input.Outpoint()

		// 1) the spent output must be in the pool
		output, err := pool.Get(outpoint)
		if err != nil {
			return errors.NewTxRejectedError(errors.ERR_TX_MISSING_INPUT, txID, i, "input %d spends %s which is not in the utxo pool", i, outpoint, err)
		}

		// 2) the signature must authenticate this input under the spent output's address
		if !verifier.Verify(output.Address, tx.SigningPayload(i), input.Signature) {
			return errors.NewTxRejectedError(errors.ERR_TX_INVALID_SIGNATURE, txID, i, "input %d signature does not verify against the address of %s", i, outpoint)
		}

		// 3) no outpoint may be claimed twice
		if _, found := claimed[outpoint]; found {
			return errors.NewTxRejectedError(errors.ERR_TX_INVALID_DOUBLE_SPEND, txID, i, "input %d spends %s which is already spent by an earlier input", i, outpoint)
		}

		claimed[outpoint] = struct{}{}

		if inputSum, ok = addValue(inputSum, output.Value); !ok {
			return errors.NewTxRejectedError(errors.ERR_TX_INVALID, txID, i, "sum of input values overflows at input %d", i)
		}
	}

	var outputSum int64

	for i, output := range tx.Outputs() {
		// 4) output values are never negative
		if output.Value < 0 {
			return errors.NewTxRejectedError(errors.ERR_TX_NEGATIVE_OUTPUT, txID, i, "output %d value %d is negative", i, output.Value)
		}

		if outputSum, ok = addValue(outputSum, output.Value); !ok {
			return errors.NewTxRejectedError(errors.ERR_TX_INVALID, txID, i, "sum of output values overflows at output %d", i)
		}
	}

	// 5) the inputs must cover the outputs, a zero fee is allowed
	if inputSum < outputSum {
		return errors.NewTxRejectedError(errors.ERR_TX_INSUFFICIENT_INPUTS, txID, -1, "sum of output values %d exceeds sum of input values %d", outputSum, inputSum)
	}

	return nil
}

// addValue returns a+b and false when the addition overflows int64.
func addValue(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}

	return sum, true
}
