/*
Package validator implements validation of transactions against a pool of unspent transaction
outputs and the batch handler that commits a mutually consistent subset of a batch to the pool.

This file contains the signature oracle used by the authorization rule. The oracle is a boolean
capability Verify(pubKey, message, signature); which scheme backs it is selected through the
validator_signatureScheme setting. Supported schemes:
  - ecdsa:   secp256k1 ECDSA, DER signatures over sha256(message), SEC encoded public keys
  - ed25519: Ed25519 over the raw message, 32 byte public keys

A verifier can be wrapped in a CachingVerifier, which remembers verdicts across batches.
*/
package validator

import (
	"crypto/ed25519"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/settings"
	"github.com/bsv-blockchain/txhandler/ulogger"
)

// SignatureScheme names a signature algorithm
type SignatureScheme string

const (
	// SignatureSchemeECDSA is secp256k1 ECDSA as implemented by go-sdk
	SignatureSchemeECDSA SignatureScheme = "ecdsa"

	// SignatureSchemeEd25519 is Ed25519
	SignatureSchemeEd25519 SignatureScheme = "ed25519"
)

// SignatureVerifier reports whether signature authenticates message under pubKey.
// Implementations must be safe for concurrent use.
type SignatureVerifier interface {
	Verify(pubKey, message, signature []byte) bool
}

// SignatureVerifierFunc adapts a plain function to a SignatureVerifier.
type SignatureVerifierFunc func(pubKey, message, signature []byte) bool

func (f SignatureVerifierFunc) Verify(pubKey, message, signature []byte) bool {
	return f(pubKey, message, signature)
}

// SignatureVerifierFactory stores the registered verifier creators by scheme
var SignatureVerifierFactory = map[SignatureScheme]func() SignatureVerifier{
	SignatureSchemeECDSA: func() SignatureVerifier {
		return NewECDSAVerifier()
	},
	SignatureSchemeEd25519: func() SignatureVerifier {
		return NewEd25519Verifier()
	},
}

// NewSignatureVerifier creates the verifier configured in tSettings, wrapped in a
// CachingVerifier when validator_signatureCacheSize is set. A negative cache size is a
// configuration error.
func NewSignatureVerifier(logger ulogger.Logger, tSettings *settings.Settings) (SignatureVerifier, error) {
	scheme := SignatureScheme(tSettings.Validator.SignatureScheme)

	createVerifier, ok := SignatureVerifierFactory[scheme]
	if !ok {
		return nil, errors.NewConfigurationError("unknown validator_signatureScheme %q", scheme)
	}

	verifier := createVerifier()

	if tSettings.Validator.SignatureCacheSize != 0 {
		cached, err := NewCachingVerifier(verifier, tSettings.Validator.SignatureCacheSize, tSettings.Validator.SignatureCacheTTL)
		if err != nil {
			return nil, err
		}

		logger.Infof("[Validator] caching up to %d %s signature verdicts for %s", tSettings.Validator.SignatureCacheSize, scheme, tSettings.Validator.SignatureCacheTTL)

		verifier = cached
	}

	return verifier, nil
}

// ECDSAVerifier verifies DER encoded secp256k1 signatures over the sha256 digest of the message.
type ECDSAVerifier struct{}

func NewECDSAVerifier() *ECDSAVerifier {
	return &ECDSAVerifier{}
}

func (v *ECDSAVerifier) Verify(pubKey, message, signature []byte) bool {
	if len(pubKey) == 0 || len(signature) == 0 {
		return false
	}

	publicKey, err := bec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	sig, err := bec.ParseDERSignature(signature)
	if err != nil {
		return false
	}

	return sig.Verify(chainhash.HashB(message), publicKey)
}

// Ed25519Verifier verifies Ed25519 signatures over the raw message.
type Ed25519Verifier struct{}

func NewEd25519Verifier() *Ed25519Verifier {
	return &Ed25519Verifier{}
}

func (v *Ed25519Verifier) Verify(pubKey, message, signature []byte) bool {
	// ed25519.Verify panics on a public key of the wrong length
	if len(pubKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(pubKey, message, signature)
}
