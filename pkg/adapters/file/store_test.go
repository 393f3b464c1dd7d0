package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/adapters/file"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_YAMLContract(t *testing.T) {
	ports.RunModelStoreContract(t, file.New(t.TempDir(), file.WithFormat(file.FormatYAML)))
}

func TestFileStore_Layout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir, file.WithFormat(file.FormatYAML))

	doc := &domain.Document{States: []domain.StateRecord{{Name: "Tonic", IsStart: true}}}
	require.NoError(t, store.Save(ctx, "standards", doc))

	data, err := os.ReadFile(filepath.Join(dir, "standards.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Tonic")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	// Other formats and stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"standards"}, names)
}

func TestFileStore_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	assert.Error(t, store.Save(ctx, "", &domain.Document{}))
	assert.Error(t, store.Save(ctx, "../escape", &domain.Document{}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	_, err := store.Load(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	names, err := file.New(filepath.Join(dir, "missing")).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}
