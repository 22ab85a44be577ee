package settings

import (
	"time"
)

type UtxoStoreSettings struct {
	// Type selects the pool implementation: "swiss" or "map".
	Type            string
	InitialCapacity int
	Logging         bool
}

type ValidatorSettings struct {
	// SignatureScheme selects the signature oracle: "ecdsa" or "ed25519".
	SignatureScheme    string
	VerifyConcurrency  int
	SignatureCacheSize int
	SignatureCacheTTL  time.Duration
	LogRejections      bool
}

type Settings struct {
	ClientName string
	LogLevel   string
	LoggerType string
	UtxoStore  UtxoStoreSettings
	Validator  ValidatorSettings
}
