// Package test provides fixtures shared by package tests: settings, keys and signed
// transactions.
package test

import (
	"crypto/ed25519"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/txhandler/model"
	"github.com/bsv-blockchain/txhandler/settings"
	"github.com/stretchr/testify/require"
)

// CreateBaseTestSettings returns settings with the inline, uncached ecdsa verifier and the
// default swiss map pool, whatever the environment configures.
func CreateBaseTestSettings(t *testing.T) *settings.Settings {
	t.Helper()

	tSettings := settings.NewSettings()
	tSettings.LogLevel = "DEBUG"
	tSettings.UtxoStore.Type = "swiss"
	tSettings.UtxoStore.InitialCapacity = 16
	tSettings.UtxoStore.Logging = false
	tSettings.Validator.SignatureScheme = "ecdsa"
	tSettings.Validator.VerifyConcurrency = 0
	tSettings.Validator.SignatureCacheSize = 0
	tSettings.Validator.LogRejections = true

	return tSettings
}

// Signer produces signatures for one key pair of a signature scheme.
type Signer interface {
	// Address returns the public key that outputs are locked to
	Address() []byte

	// Sign signs message
	Sign(t *testing.T, message []byte) []byte
}

// ECDSAKey is a secp256k1 key pair. Signatures are DER encoded and made over sha256(message).
type ECDSAKey struct {
	PrivateKey *bec.PrivateKey
	PublicKey  *bec.PublicKey
}

// NewECDSAKey derives a deterministic key pair from seed.
func NewECDSAKey(seed string) *ECDSAKey {
	privateKey, publicKey := bec.PrivateKeyFromBytes(chainhash.HashB([]byte(seed)))

	return &ECDSAKey{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
	}
}

func (k *ECDSAKey) Address() []byte {
	return k.PublicKey.Compressed()
}

func (k *ECDSAKey) Sign(t *testing.T, message []byte) []byte {
	t.Helper()

	signature, err := k.PrivateKey.Sign(chainhash.HashB(message))
	require.NoError(t, err)

	return signature.Serialize()
}

// Ed25519Key is an Ed25519 key pair.
type Ed25519Key struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// NewEd25519Key derives a deterministic key pair from seed.
func NewEd25519Key(seed string) *Ed25519Key {
	privateKey := ed25519.NewKeyFromSeed(chainhash.HashB([]byte(seed)))

	publicKey, _ := privateKey.Public().(ed25519.PublicKey)

	return &Ed25519Key{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
	}
}

func (k *Ed25519Key) Address() []byte {
	return k.PublicKey
}

func (k *Ed25519Key) Sign(t *testing.T, message []byte) []byte {
	t.Helper()

	return ed25519.Sign(k.PrivateKey, message)
}

// Spend describes an input of a transaction built by CreateTx.
type Spend struct {
	Outpoint model.Outpoint
	Signer   Signer
}

// Pay describes an output of a transaction built by CreateTx.
type Pay struct {
	Value int64
	To    Signer
}

// CreateTx builds a finalized transaction spending the given outpoints, each input signed by
// its signer, and paying the given outputs. A nil signer leaves the input unsigned.
func CreateTx(t *testing.T, spends []Spend, pays []Pay) *model.Transaction {
	t.Helper()

	tx := NewUnsignedTx(spends, pays)

	for i, spend := range spends {
		if spend.Signer != nil {
			tx.SetSignature(i, spend.Signer.Sign(t, tx.SigningPayload(i)))
		}
	}

	return tx.Finalize()
}

// NewUnsignedTx builds a transaction that is neither signed nor finalized.
func NewUnsignedTx(spends []Spend, pays []Pay) *model.Transaction {
	tx := model.NewTransaction()

	for _, spend := range spends {
		tx.AddInput(spend.Outpoint.TxID, spend.Outpoint.Index)
	}

	for _, pay := range pays {
		var address []byte
		if pay.To != nil {
			address = pay.To.Address()
		}

		tx.AddOutput(pay.Value, address)
	}

	return tx
}

// GenesisOutpoint returns an outpoint of a transaction that does not exist, usable to seed a
// pool.
func GenesisOutpoint(name string, index uint32) model.Outpoint {
	return model.NewOutpoint(chainhash.HashH([]byte(name)), index)
}
