package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/domain"
)

func contractDocument() *domain.Document {
	return &domain.Document{
		States: []domain.StateRecord{
			{Name: "Tonic", IsStart: true, IsEnd: true},
			{Name: "Dominant"},
		},
		Transitions: []domain.TransitionRecord{
			{From: 0, To: 1, Symbol: domain.SymbolRecord{Numeral: "V", Quality: "x"}, Count: 0.5},
			{From: 1, To: 0, Symbol: domain.SymbolRecord{Numeral: "I", Quality: "M"}, Count: 1},
		},
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	name := "contract-model-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument()

		err := store.Save(ctx, name, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		doc := contractDocument()
		doc.Transitions[0].Count = 2
		require.NoError(t, store.Save(ctx, name, doc))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 2.0, loaded.Transitions[0].Count)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractDocument()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, contractDocument()))
		require.NoError(t, store.Save(ctx, id2, contractDocument()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		models, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, models, id1)
		assert.Contains(t, models, id2)
	})
}
