package settings

import (
	"time"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName: getString("clientName", "txhandler"),
		LogLevel:   getString("logLevel", "INFO"),
		LoggerType: getString("logger_type", "zerolog"),
		UtxoStore: UtxoStoreSettings{
			Type:            getString("utxostore_type", "swiss"),
			InitialCapacity: getInt("utxostore_initialCapacity", 1024),
			Logging:         getBool("utxostore_logging", false),
		},
		Validator: ValidatorSettings{
			SignatureScheme:    getString("validator_signatureScheme", "ecdsa"),
			VerifyConcurrency:  getInt("validator_verifyConcurrency", 0),  // 0 - verify inline
			SignatureCacheSize: getInt("validator_signatureCacheSize", 0), // 0 - no cross batch cache
			SignatureCacheTTL:  getDuration("validator_signatureCacheTTL", 10*time.Minute),
			LogRejections:      getBool("validator_logRejections", true),
		},
	}
}
