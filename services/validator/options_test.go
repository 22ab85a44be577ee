package validator

import (
	"testing"

	"github.com/bsv-blockchain/txhandler/util/test"
	"github.com/stretchr/testify/assert"
)

func TestProcessOptions(t *testing.T) {
	tSettings := test.CreateBaseTestSettings(t)
	tSettings.Validator.VerifyConcurrency = 3

	options := ProcessOptions(tSettings)
	assert.Equal(t, 3, options.verifyConcurrency)
	assert.Nil(t, options.verifier)

	verifier := NewEd25519Verifier()
	options = ProcessOptions(tSettings, WithVerifyConcurrency(-1), WithSignatureVerifier(verifier))
	assert.Equal(t, -1, options.verifyConcurrency)
	assert.Same(t, verifier, options.verifier)
}
