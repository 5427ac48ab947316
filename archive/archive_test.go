package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// memSink records everything it is given.
type memSink map[string][]byte

func (m memSink) Put(_ context.Context, name string, data []byte) error {
	m[name] = append([]byte(nil), data...)
	return nil
}

func TestDirPut(t *testing.T) {
	dir := Dir(filepath.Join(t.TempDir(), "nested", "out"))
	require.NoError(t, dir.Put(context.Background(), "config.yaml", []byte("a: 1\n")))
	data, err := os.ReadFile(filepath.Join(string(dir), "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(data))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, dir.Put(ctx, "x", nil), context.Canceled)
}

func TestCopyFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(src, []byte("clients: []\n"), 0644))

	sink := memSink{}
	require.NoError(t, CopyFile(context.Background(), sink, src, "config.yaml"))
	require.Equal(t, "clients: []\n", string(sink["config.yaml"]))

	require.Error(t, CopyFile(context.Background(), sink, src+".missing", "x"))
}

func TestTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("1,2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("3,4\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	sink := memSink{}
	names, err := Tree(context.Background(), sink, dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.csv", "b.csv"}, names)
	require.Len(t, sink, 2)

	_, err = Tree(context.Background(), sink, filepath.Join(dir, "absent"))
	require.Error(t, err)
}

func TestNewBucketRequiresName(t *testing.T) {
	_, err := NewBucket(context.Background(), "", "runs")
	require.Error(t, err)
}
