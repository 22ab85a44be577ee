package validator

import (
	"github.com/bsv-blockchain/txhandler/settings"
)

type Options struct {
	verifyConcurrency int
	verifier          SignatureVerifier
}

// Option is a function that sets some option on the Options struct
type Option func(*Options)

// NewDefaultOptions returns the options configured in tSettings. The signature verifier is
// left nil and created from settings unless WithSignatureVerifier is given.
func NewDefaultOptions(tSettings *settings.Settings) *Options {
	return &Options{
		verifyConcurrency: tSettings.Validator.VerifyConcurrency,
	}
}

func ProcessOptions(tSettings *settings.Settings, opts ...Option) *Options {
	options := NewDefaultOptions(tSettings)
	for _, o := range opts {
		o(options)
	}

	return options
}

// WithVerifyConcurrency sets the number of goroutines verifying signatures before the
// sequential commit phase. 0 verifies inline, a negative value uses one goroutine per CPU.
func WithVerifyConcurrency(n int) Option {
	return func(o *Options) {
		o.verifyConcurrency = n
	}
}

// WithSignatureVerifier replaces the signature verifier configured in settings
func WithSignatureVerifier(verifier SignatureVerifier) Option {
	return func(o *Options) {
		o.verifier = verifier
	}
}
