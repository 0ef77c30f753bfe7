package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/motel/pkg/types"
)

func TestWriteReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "records.jsonl")

	in := []types.MatchRecord{
		{DocumentID: "a", Position: 3, MotifID: "m1"},
		{DocumentID: "b", Position: 0, MotifID: "m2"},
	}
	require.NoError(t, WriteJSONL(path, in))

	out, err := ReadJSONL[types.MatchRecord](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadJSONLReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"document_id\":\"a\"}\nnot json\n"), 0o644))

	_, err := ReadJSONL[types.MatchRecord](path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\n{\"document_id\":\"a\",\"position\":1,\"motif_id\":\"m\"}\n\n"), 0o644))

	out, err := ReadJSONL[types.MatchRecord](path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].DocumentID)
}

func TestUpToDate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")

	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))

	fresh, err := UpToDate(out, in)
	require.NoError(t, err)
	assert.False(t, fresh, "missing output must not be up to date")

	require.NoError(t, os.WriteFile(out, []byte("y"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(out, later, later))

	fresh, err = UpToDate(out, in)
	require.NoError(t, err)
	assert.True(t, fresh)

	evenLater := later.Add(time.Minute)
	require.NoError(t, os.Chtimes(in, evenLater, evenLater))

	fresh, err = UpToDate(out, in)
	require.NoError(t, err)
	assert.False(t, fresh, "stale output must not be up to date")
}
