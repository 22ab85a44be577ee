// Package factory creates the utxo pool implementation selected in settings.
//
// Supported pool types (setting utxostore_type):
//   - swiss: dolthub/swiss backed pool (default)
//   - map:   builtin map backed pool
//
// When utxostore_logging is enabled the pool is wrapped with the logging store, which logs
// every operation at debug level.
package factory

import (
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/settings"
	"github.com/bsv-blockchain/txhandler/stores/utxo"
	utxologger "github.com/bsv-blockchain/txhandler/stores/utxo/logger"
	"github.com/bsv-blockchain/txhandler/stores/utxo/memory"
	"github.com/bsv-blockchain/txhandler/ulogger"
)

var availableStores = map[string]func(tSettings *settings.Settings) (utxo.Interface, error){
	"swiss": func(tSettings *settings.Settings) (utxo.Interface, error) {
		return memory.NewSwissMap(tSettings.UtxoStore.InitialCapacity)
	},
	"map": func(tSettings *settings.Settings) (utxo.Interface, error) {
		return memory.NewMap(tSettings.UtxoStore.InitialCapacity)
	},
}

// New returns an empty pool of the configured type.
func New(logger ulogger.Logger, tSettings *settings.Settings) (utxo.Interface, error) {
	storeInit, ok := availableStores[tSettings.UtxoStore.Type]
	if !ok {
		return nil, errors.NewConfigurationError("unknown utxostore_type %q", tSettings.UtxoStore.Type)
	}

	logger.Debugf("[UTXOStore] creating %s pool with initial capacity %d", tSettings.UtxoStore.Type, tSettings.UtxoStore.InitialCapacity)

	store, err := storeInit(tSettings)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid utxostore_initialCapacity %d", tSettings.UtxoStore.InitialCapacity, err)
	}

	if tSettings.UtxoStore.Logging {
		store = utxologger.New(logger, store)
	}

	return store, nil
}
