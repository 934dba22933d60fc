package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemsapi/src/core/domain"
	"itemsapi/src/infra/config"
	"itemsapi/src/infra/logger"
)

type missingGate []string

func (g missingGate) Missing() []string { return g }

func TestNewStore(t *testing.T) {
	t.Run("Should build a seeded memory store", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory, MemorySeed: true}}
		store, err := NewStore(cfg, missingGate{}, logger.Discard(), nil)
		require.NoError(t, err)
		defer store.Close()

		items, err := store.Items.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("Should build relational stores without dialing", func(t *testing.T) {
		for _, driver := range []config.Driver{config.DriverPostgres, config.DriverMSSQL} {
			cfg := &config.Config{Store: config.StoreConfig{Driver: driver}}
			store, err := NewStore(cfg, missingGate{"PASSWORD"}, logger.Discard(), nil)
			require.NoError(t, err, driver)

			_, err = store.Items.Ping(context.Background())
			assert.True(t, domain.IsNotConfigured(err), driver)
			store.Close()
		}
	})

	t.Run("Should reject unknown drivers", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Driver: "oracle"}}
		_, err := NewStore(cfg, missingGate{}, logger.Discard(), nil)
		assert.ErrorContains(t, err, `unknown store driver "oracle"`)
	})
}
