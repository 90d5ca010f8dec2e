package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logstat/internal/storage"
	"logstat/internal/storage/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return NewStore()
	})
}

func TestLoadCopiesRows(t *testing.T) {
	rows := storetest.Fixture()
	s := NewStore()
	require.NoError(t, s.Load(context.Background(), rows))

	rows[0].URL = "/mutated"
	top, err := s.TopPages(context.Background(), 10)
	require.NoError(t, err)
	for _, p := range top {
		assert.NotEqual(t, "/mutated", p.URL)
	}
}
