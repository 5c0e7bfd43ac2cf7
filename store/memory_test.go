package store_test

import (
	"testing"

	"github.com/harperreed/activator/store"
	"github.com/harperreed/activator/store/storetest"
)

func TestMemoryBackend(t *testing.T) {
	storetest.RunBackendTests(t, func(t *testing.T) store.Backend {
		return store.NewMemoryBackend()
	})
}
