package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	list, err := Load(Source{})
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP", "HOW", "U", "DÜ"}, list)
}

func TestLoadListPreservesCaseAndOrder(t *testing.T) {
	list, err := Load(Source{List: []string{" dü ", "DÜ", "", "Sup"}, File: "ignored.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dü", "DÜ", "Sup"}, list)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.txt")
	require.NoError(t, os.WriteFile(path, []byte("# animals\nCAT\n\n  DOG  \n"), 0o644))

	list, err := Load(Source{File: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "DOG"}, list)
}

func TestLoadRejectsBadBanks(t *testing.T) {
	_, err := Load(Source{List: []string{"A", "B", "A"}})
	assert.ErrorIs(t, err, ErrDuplicateWord)

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))
	_, err = Load(Source{File: path})
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestInitOnce(t *testing.T) {
	require.NoError(t, Init(Source{List: []string{"SUP", "HOW"}}))
	// A second call is a no-op.
	require.NoError(t, Init(Source{List: []string{"OTHER"}}))

	assert.Equal(t, 2, Stats())
	assert.Equal(t, []string{"SUP", "HOW"}, Bank())

	b := Bank()
	b[0] = "mutated"
	assert.Equal(t, "SUP", Bank()[0])
}
