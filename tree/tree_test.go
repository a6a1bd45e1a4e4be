package tree

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	depth int
	name  string
}

func collect(t *testing.T, tr *Tree) []pair {
	t.Helper()
	var out []pair
	for d, n := range tr.Enumerate() {
		out = append(out, pair{d, n})
	}
	return out
}

// newSampleTree builds /home/user1/file1.txt and /etc/config
func newSampleTree(t *testing.T) *Tree {
	t.Helper()
	tr := New()
	mustAdd(t, tr, "/", "home", Directory)
	mustAdd(t, tr, "/home", "user1", Directory)
	mustAdd(t, tr, "/home/user1", "file1.txt", File)
	mustAdd(t, tr, "/", "etc", Directory)
	mustAdd(t, tr, "/etc", "config", File)
	return tr
}

func mustAdd(t *testing.T, tr *Tree, parent, name string, kind Kind) *Node {
	t.Helper()
	n, err := tr.Add(parent, name, kind)
	require.NoError(t, err)
	return n
}

func TestNew(t *testing.T) {
	t.Parallel()

	tr := New()
	root := tr.Root()

	require.NotNil(t, root)
	assert.Equal(t, "/", root.Name())
	assert.True(t, root.IsDir())
	assert.Empty(t, root.Children())
}

func TestTree_Resolve_Root(t *testing.T) {
	t.Parallel()

	for _, tr := range []*Tree{New(), newSampleTree(t)} {
		n, err := tr.Resolve("/")
		require.NoError(t, err)
		assert.Same(t, tr.Root(), n)
	}
}

func TestTree_Resolve(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)

	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{"/home", "home", nil},
		{"/home/user1", "user1", nil},
		{"/home/user1/file1.txt", "file1.txt", nil},
		{"/etc/config", "config", nil},
		{"/nope", "", ErrPathNotFound},
		{"/home/nope", "", ErrPathNotFound},
		{"/etc/config/below", "", ErrPathNotFound},
		{"/home/", "", ErrPathNotFound}, // trailing slash looks up ""
		{"//home", "", ErrPathNotFound},
		{"", "", ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := tr.Resolve(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Name())
		})
	}
}

func TestTree_Resolve_EmptyTree(t *testing.T) {
	t.Parallel()

	_, err := New().Resolve("/nope")

	var tErr *Error
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, OpResolve, tErr.Op)
	assert.Equal(t, "/nope", tErr.Path)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestTree_Add(t *testing.T) {
	t.Parallel()

	tr := New()
	home := mustAdd(t, tr, "/", "home", Directory)

	got, err := tr.Resolve("/home")
	require.NoError(t, err)
	assert.Same(t, home, got)
	assert.True(t, got.IsDir())
}

func TestTree_Add_MissingParent(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)
	before := collect(t, tr)

	_, err := tr.Add("/var/log", "syslog", File)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Equal(t, before, collect(t, tr), "failed add must leave the tree unchanged")
}

func TestTree_Add_FileParent(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)
	before := collect(t, tr)

	_, err := tr.Add("/etc/config", "child", File)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)
	var tErr *Error
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, OpAdd, tErr.Op)
	assert.Equal(t, "/etc/config", tErr.Path)
	assert.Equal(t, before, collect(t, tr), "failed add must leave the tree unchanged")
}

func TestTree_Add_Duplicates(t *testing.T) {
	t.Parallel()

	tr := New()
	mustAdd(t, tr, "/", "etc", Directory)
	first := mustAdd(t, tr, "/etc", "config", File)
	second := mustAdd(t, tr, "/etc", "config", File)
	require.NotSame(t, first, second)

	got, err := tr.Resolve("/etc/config")
	require.NoError(t, err)
	assert.Same(t, first, got, "first inserted match must win")

	children, err := tr.List("/etc")
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestTree_WriteRead(t *testing.T) {
	t.Parallel()

	t.Run("AppendAccumulates", func(t *testing.T) {
		t.Parallel()
		tr := newSampleTree(t)
		require.NoError(t, tr.WriteString("/etc/config", "A"))
		require.NoError(t, tr.WriteString("/etc/config", "B"))

		got, err := tr.Read("/etc/config")
		require.NoError(t, err)
		assert.Equal(t, "AB", string(got))
	})

	t.Run("EmptyFile", func(t *testing.T) {
		t.Parallel()
		tr := newSampleTree(t)

		got, err := tr.Read("/etc/config")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ReadIsIdempotent", func(t *testing.T) {
		t.Parallel()
		tr := newSampleTree(t)
		require.NoError(t, tr.WriteString("/etc/config", "data"))

		first, err := tr.Read("/etc/config")
		require.NoError(t, err)
		second, err := tr.Read("/etc/config")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("ReadIsSnapshot", func(t *testing.T) {
		t.Parallel()
		tr := newSampleTree(t)
		require.NoError(t, tr.WriteString("/etc/config", "abc"))

		got, err := tr.Read("/etc/config")
		require.NoError(t, err)
		got[0] = 'z'

		again, err := tr.Read("/etc/config")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}

func TestTree_WriteRead_Directory(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)

	err := tr.WriteString("/home", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIsADirectory)

	_, err = tr.Read("/home")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIsADirectory)

	_, err = tr.Read("/")
	assert.ErrorIs(t, err, ErrIsADirectory)
}

func TestTree_WriteRead_Missing(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)

	err := tr.WriteString("/etc/missing", "x")
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = tr.Read("/etc/missing")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestTree_List(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)

	root, err := tr.List("/")
	require.NoError(t, err)
	names := make([]string, 0, len(root))
	for _, n := range root {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"home", "etc"}, names)

	_, err = tr.List("/etc/config")
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = tr.List("/missing")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

// TestTree_Scenarios runs the reference usage end to end.
func TestTree_Scenarios(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)
	require.NoError(t, tr.WriteString("/home/user1/file1.txt", "Hello, World!\n"))
	require.NoError(t, tr.WriteString("/home/user1/file1.txt", "This is the second line.\n"))
	require.NoError(t, tr.WriteString("/etc/config", "Configuration data here."))

	got, err := tr.Read("/home/user1/file1.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!\nThis is the second line.\n", string(got))

	got, err = tr.Read("/etc/config")
	require.NoError(t, err)
	assert.Equal(t, "Configuration data here.", string(got))

	want := []pair{
		{0, "/"},
		{1, "home"},
		{2, "user1"},
		{3, "file1.txt"},
		{1, "etc"},
		{2, "config"},
	}
	assert.Equal(t, want, collect(t, tr))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{Op: OpRead, Path: "/home", Err: ErrIsADirectory}
	assert.Equal(t, "read /home: is a directory", err.Error())
	assert.True(t, errors.Is(err, ErrIsADirectory))

	noPath := &Error{Op: OpAttach, Err: ErrNotADirectory}
	assert.Equal(t, "attach: not a directory", noPath.Error())
}

func TestEnumerate_EarlyStop(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)
	var names []string
	for _, n := range tr.Enumerate() {
		names = append(names, n)
		if len(names) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"/", "home", "user1"}, names)
}

func TestEnumerateFrom(t *testing.T) {
	t.Parallel()

	tr := newSampleTree(t)
	home, err := tr.Resolve("/home")
	require.NoError(t, err)

	var got []pair
	for d, n := range EnumerateFrom(home) {
		got = append(got, pair{d, n})
	}
	assert.Equal(t, []pair{{0, "home"}, {1, "user1"}, {2, "file1.txt"}}, got)

	file, err := tr.Resolve("/etc/config")
	require.NoError(t, err)
	names := slices.Collect(func(yield func(string) bool) {
		for _, n := range EnumerateFrom(file) {
			if !yield(n) {
				return
			}
		}
	})
	assert.Equal(t, []string{"config"}, names)
}

func TestEnumerate_DepthMatchesNesting(t *testing.T) {
	t.Parallel()

	tr := New()
	mustAdd(t, tr, "/", "a", Directory)
	mustAdd(t, tr, "/a", "b", Directory)
	mustAdd(t, tr, "/a/b", "c", File)

	depths := map[string]int{}
	for d, n := range tr.Enumerate() {
		depths[n] = d
	}
	assert.Equal(t, 3, depths["c"])
	assert.Equal(t, 0, depths["/"])
}
