package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/motel/internal/text"
	"github.com/pdiddy/motel/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	raw := "the motel is cheap"
	doc := types.Document{
		ID:     "doc-1",
		Tokens: text.Tokenize(raw),
		Gold:   []int{1},
	}
	require.NoError(t, store.SaveDocument(ctx, doc, raw))

	loaded, err := store.LoadDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestSaveDocumentReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := types.Document{ID: "doc-1", Tokens: text.Tokenize("old text"), Gold: []int{0}}
	require.NoError(t, store.SaveDocument(ctx, first, "old text"))

	second := types.Document{ID: "doc-1", Tokens: text.Tokenize("entirely new words here")}
	require.NoError(t, store.SaveDocument(ctx, second, "entirely new words here"))

	loaded, err := store.LoadDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Tokens, 4)
	assert.Empty(t, loaded.Gold)
}

func TestLoadDocumentMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadDocument(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidDocument))
}

func TestSaveDocumentRejectsBadGold(t *testing.T) {
	store := openTestStore(t)

	doc := types.Document{ID: "doc-1", Tokens: text.Tokenize("two tokens"), Gold: []int{9}}
	err := store.SaveDocument(context.Background(), doc, "two tokens")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidDocument))
}

func TestLoadDocumentsOrdered(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		doc := types.Document{ID: id, Tokens: text.Tokenize("word")}
		require.NoError(t, store.SaveDocument(ctx, doc, "word"))
	}

	docs, err := store.LoadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.Equal(t, "c", docs[2].ID)
}

func TestIngest(t *testing.T) {
	store := openTestStore(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "review.txt")
	require.NoError(t, os.WriteFile(good, []byte("the motel is cheap"), 0o644))

	var out strings.Builder
	labels := map[string][]int{"review": {1}}
	summary, err := store.Ingest(context.Background(), []string{good, filepath.Join(dir, "missing.txt")}, labels, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Total())
	assert.Contains(t, out.String(), "ingested review")

	doc, err := store.LoadDocument(context.Background(), "review")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, doc.Gold)
}

func TestLoadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("review:\n  - 1\n  - 3\n"), 0o644))

	labels, err := LoadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"review": {1, 3}}, labels)

	empty, err := LoadLabels("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
