package materialize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/postsaver/postsaver/pkg/content"
	"github.com/postsaver/postsaver/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDocument(t *testing.T, folder, title string) string {
	t.Helper()
	data, err := os.ReadFile(DocumentPath(folder, title))
	require.NoError(t, err)
	return string(data)
}

func TestAppendTextIsIdempotent(t *testing.T) {
	ctx := testContext()
	folder := t.TempDir()

	res, err := AppendText(ctx, folder, "My post", "  Hello, world  \n", "")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)

	res, err = AppendText(ctx, folder, "My post", "Hello, world", "")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)

	doc := readDocument(t, folder, "My post")
	assert.Equal(t, "Hello, world\n", doc)
	assert.Equal(t, 1, strings.Count(doc, "Hello, world"))

	hashes, err := ledger.Load(folder)
	require.NoError(t, err)
	assert.Len(t, hashes, 1)
	assert.Contains(t, hashes, ledger.HashOf("Hello, world"))
}

func TestAppendTextAcrossRuns(t *testing.T) {
	ctx := testContext()
	folder := t.TempDir()

	for run := 0; run < 3; run++ {
		for _, block := range []string{"first", "second", "first"} {
			_, err := AppendText(ctx, folder, "doc", block, "")
			require.NoError(t, err)
		}
	}
	assert.Equal(t, "first\nsecond\n", readDocument(t, folder, "doc"))
}

func TestAppendTextBlockEnd(t *testing.T) {
	ctx := testContext()
	folder := t.TempDir()

	for i := 0; i < 2; i++ {
		res, err := AppendText(ctx, folder, "doc", "ignored", content.BlockEnd)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
	}
	assert.Equal(t, "\n\n", readDocument(t, folder, "doc"))

	hashes, err := ledger.Load(folder)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestAppendTextSkipsBlank(t *testing.T) {
	folder := t.TempDir()
	res, err := AppendText(testContext(), folder, "doc", " \t\n ", "")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Empty(t, readDocument(t, folder, "doc"))
	assert.NoFileExists(t, ledger.Path(folder))
}

func TestAppendTextSanitizesDocumentName(t *testing.T) {
	folder := t.TempDir()
	_, err := AppendText(testContext(), folder, "Q&A: part 1?", "text", "")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(folder, "Q&A_ part 1_.md"))
}

func TestAppendTextMissingFolder(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "missing")
	_, err := AppendText(testContext(), folder, "doc", "text", "")
	require.Error(t, err)
	var fileErr *FileError
	assert.ErrorAs(t, err, &fileErr)
}
