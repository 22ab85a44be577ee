package factory

import (
	"testing"

	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/bsv-blockchain/txhandler/settings"
	utxologger "github.com/bsv-blockchain/txhandler/stores/utxo/logger"
	"github.com/bsv-blockchain/txhandler/stores/utxo/memory"
	"github.com/bsv-blockchain/txhandler/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tSettings := settings.NewSettings()

	t.Run("swiss", func(t *testing.T) {
		tSettings.UtxoStore.Type = "swiss"

		store, err := New(ulogger.TestLogger{}, tSettings)
		require.NoError(t, err)

		_, ok := store.(*memory.SwissMap)
		assert.True(t, ok)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("map", func(t *testing.T) {
		tSettings.UtxoStore.Type = "map"

		store, err := New(ulogger.TestLogger{}, tSettings)
		require.NoError(t, err)

		_, ok := store.(*memory.Map)
		assert.True(t, ok)
	})

	t.Run("logging", func(t *testing.T) {
		tSettings.UtxoStore.Type = "map"
		tSettings.UtxoStore.Logging = true

		defer func() { tSettings.UtxoStore.Logging = false }()

		store, err := New(ulogger.TestLogger{}, tSettings)
		require.NoError(t, err)

		_, ok := store.(*utxologger.Store)
		assert.True(t, ok)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		for _, storeType := range []string{"swiss", "map"} {
			tSettings.UtxoStore.Type = storeType
			tSettings.UtxoStore.InitialCapacity = -1

			_, err := New(ulogger.TestLogger{}, tSettings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		}

		tSettings.UtxoStore.InitialCapacity = 1024
	})

	t.Run("unknown", func(t *testing.T) {
		tSettings.UtxoStore.Type = "aerospike"

		_, err := New(ulogger.TestLogger{}, tSettings)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})
}
