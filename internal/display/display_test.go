package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/brettbedarf/memtree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender(t *testing.T) {
	t.Parallel()

	tr := tree.New()
	_, err := tr.Add("/", "home", tree.Directory)
	require.NoError(t, err)
	_, err = tr.Add("/home", "user1", tree.Directory)
	require.NoError(t, err)
	_, err = tr.Add("/home/user1", "file1.txt", tree.File)
	require.NoError(t, err)
	_, err = tr.Add("/", "etc", tree.Directory)
	require.NoError(t, err)
	_, err = tr.Add("/etc", "config", tree.File)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tr.Enumerate(), "  "))

	want := "/\n" +
		"  home\n" +
		"    user1\n" +
		"      file1.txt\n" +
		"  etc\n" +
		"    config\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_EmptyTree(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tree.New().Enumerate(), "\t"))
	assert.Equal(t, "/\n", buf.String())
}

func TestRender_WriteError(t *testing.T) {
	t.Parallel()

	err := Render(failWriter{}, tree.New().Enumerate(), "  ")
	assert.Error(t, err)
}
