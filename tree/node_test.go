package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	dir := NewNode("home", Directory)
	assert.Equal(t, "home", dir.Name())
	assert.Equal(t, Directory, dir.Kind())
	assert.True(t, dir.IsDir())
	assert.Empty(t, dir.Children())
	assert.Equal(t, 0, dir.Size())

	file := NewNode("file1.txt", File)
	assert.Equal(t, File, file.Kind())
	assert.False(t, file.IsDir())
	assert.Empty(t, file.Children())
	assert.Equal(t, 0, file.Size())
}

func TestNode_AttachChild(t *testing.T) {
	t.Parallel()

	parent := NewNode("parent", Directory)
	a := NewNode("a", File)
	b := NewNode("b", Directory)

	require.NoError(t, parent.AttachChild(a))
	require.NoError(t, parent.AttachChild(b))

	children := parent.Children()
	require.Len(t, children, 2)
	assert.Same(t, a, children[0], "insertion order must be preserved")
	assert.Same(t, b, children[1])
}

func TestNode_AttachChild_File(t *testing.T) {
	t.Parallel()

	file := NewNode("config", File)
	err := file.AttachChild(NewNode("x", File))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotADirectory))
	assert.Empty(t, file.Children(), "file must not own children after a failed attach")
}

func TestNode_ChildrenIsCopy(t *testing.T) {
	t.Parallel()

	parent := NewNode("parent", Directory)
	require.NoError(t, parent.AttachChild(NewNode("a", File)))

	children := parent.Children()
	children[0] = NewNode("replaced", File)

	assert.Equal(t, "a", parent.Children()[0].Name())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dir", Directory.String())
	assert.Equal(t, "file", File.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"dir", Directory, false},
		{"file", File, false},
		{"directory", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
