package pyconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var derived = []Assignment{
	Int("max_seq_length", 8),
	Int("num_classes", 2),
	Int("num_train_data", 2),
}

func TestPatchLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"inserted after first line",
			"foo = 1\nbar = 2",
			"foo = 1\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\nbar = 2"},
		{"existing assignments replaced",
			"max_seq_length = 128\nfoo = 1\nnum_classes = 3\n" +
				"num_train_data = 3668\nbar = 2",
			"foo = 1\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\nbar = 2"},
		{"indented assignment removed",
			"import os\n    num_classes = 5\nx = 1",
			"import os\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\nx = 1"},
		{"lookalike lines kept",
			"# num_classes = 4\nnum_classes_extra = 1\nnum_classes=3",
			"# num_classes = 4\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\nnum_classes_extra = 1\nnum_classes=3"},
		{"multi statement line removed",
			"a = 1\nnum_classes = 3; b = 4\nc = 5",
			"a = 1\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\nc = 5"},
		{"every line replaced",
			"num_classes = 9\nmax_seq_length = 1",
			"max_seq_length = 8\nnum_classes = 2\nnum_train_data = 2"},
		{"trailing newline preserved",
			"foo = 1\n",
			"foo = 1\nmax_seq_length = 8\nnum_classes = 2\n" +
				"num_train_data = 2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines := strings.Split(test.input, "\n")
			patched := PatchLines(lines, derived...)
			assert.Equal(t, test.expected, strings.Join(patched, "\n"))
		})
	}
}

func TestPatchLinesIdempotent(t *testing.T) {
	lines := []string{"foo = 1", "num_classes = 7", "bar = 2"}
	once := PatchLines(lines, derived...)
	twice := PatchLines(once, derived...)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"foo = 1", "num_classes = 7", "bar = 2"}, lines)
}

func TestPatchLinesEmpty(t *testing.T) {
	assert.Equal(t, []string{"num_classes = 2"},
		PatchLines(nil, Int("num_classes", 2)))
}

func TestPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config_data.py")
	require.NoError(t, os.WriteFile(path, []byte("foo = 1\nbar = 2"), 0600))

	require.NoError(t, Patch(path, derived...))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo = 1\nmax_seq_length = 8\nnum_classes = 2\n"+
		"num_train_data = 2\nbar = 2", string(contents))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
}

func TestPatchMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.py")
	assert.ErrorIs(t, Patch(path, derived...), ErrConfigNotFound)
	assert.NoFileExists(t, path)
}
