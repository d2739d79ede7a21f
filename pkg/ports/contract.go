package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")
	doc := []byte(`{"type":"object","properties":{"cvv":{"type":"string","format":"card-cvv"}}}`)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.JSONEq(t, string(doc), string(loaded))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		next := []byte(`{"type":"object"}`)
		require.NoError(t, store.Save(ctx, name, next))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.JSONEq(t, string(next), string(loaded))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Invalid Names", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "", doc), ErrInvalidName)
		assert.ErrorIs(t, store.Save(ctx, "a/b", doc), ErrInvalidName)
		_, err := store.Load(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidName)
		assert.ErrorIs(t, store.Delete(ctx, ""), ErrInvalidName)
		assert.ErrorIs(t, store.Delete(ctx, "../escape"), ErrInvalidName)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, doc))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		require.NoError(t, store.Save(ctx, id1, doc))
		require.NoError(t, store.Save(ctx, id2, doc))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
