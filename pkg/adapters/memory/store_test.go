package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/rivercross/pkg/adapters/memory"
	"github.com/aretw0/rivercross/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSolutionStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	report := ports.SampleReport("run-1")

	require.NoError(t, store.Save(ctx, "fp", report))
	report.States[0] = "mutated"

	loaded, err := store.Load(ctx, "fp")
	require.NoError(t, err)
	assert.Equal(t, "A|", loaded.States[0])

	loaded.Paths[0][0] = "mutated"
	again, err := store.Load(ctx, "fp")
	require.NoError(t, err)
	assert.Equal(t, "A|", again.Paths[0][0])
}
