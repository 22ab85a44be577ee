// Package errors provides utilities for categorizing and handling errors in the settlement core.
package errors

// IsTxRejection reports whether err is a validation outcome rather than a fault, i.e. one of
// the codes returned when a transaction breaks a validity rule.
func IsTxRejection(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_TX_INVALID,
			ERR_TX_MISSING_INPUT,
			ERR_TX_INVALID_SIGNATURE,
			ERR_TX_INVALID_DOUBLE_SPEND,
			ERR_TX_NEGATIVE_OUTPUT,
			ERR_TX_INSUFFICIENT_INPUTS:
			return true
		}
	}

	return false
}

// RejectionCode returns the code of the outermost *Error in err, or ERR_UNKNOWN.
func RejectionCode(err error) ERR {
	var tErr *Error
	if As(err, &tErr) {
		return tErr.Code()
	}

	return ERR_UNKNOWN
}
