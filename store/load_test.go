package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	nt := `<http://example.org/a> <http://example.org/p> "one" .
<http://example.org/b> <http://example.org/p> "two" .
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.nt"), []byte(nt), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.nt"), []byte("<oops\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not a snapshot"), 0644))

	s := New(testLogger())
	loaded := s.LoadDir(dir)

	assert.Equal(t, 1, loaded, "the broken file is skipped, the text file ignored")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(IRI("http://example.org/a"), IRI("http://example.org/p"), Literal("one")))
}

func TestLoadDir_Missing(t *testing.T) {
	s := New(testLogger())
	loaded := s.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, 0, loaded)
	assert.Equal(t, 0, s.Len())
}

func TestLoadFile_FormatByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.ttl")
	ttl := `@prefix ex: <http://example.org/> .

<http://example.org/a>
    ex:p "hello" .
`
	require.NoError(t, os.WriteFile(path, []byte(ttl), 0644))

	s := New(testLogger())
	require.NoError(t, s.LoadFile(path))
	assert.True(t, s.Has(IRI("http://example.org/a"), IRI("http://example.org/p"), Literal("hello")))
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))

	s := New(testLogger())
	assert.Error(t, s.LoadFile(path))
}
