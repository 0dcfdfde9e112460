/* main_test.go
 * Contains unit tests for main.go functions
 */

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBracket(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bracket.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestReadBracketFile_OnePerLine tests the plain one name per line layout
func TestReadBracketFile_OnePerLine(t *testing.T) {
	path := writeBracket(t, "gonzaga\nvillanova\nduke\nhouston\n")

	names, err := readBracketFile(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"gonzaga", "villanova", "duke", "houston"}, names)
}

// TestReadBracketFile_QuotedNames tests quoted multi-word names on one line
func TestReadBracketFile_QuotedNames(t *testing.T) {
	path := writeBracket(t, `"North Carolina" duke "Saint Marys" houston`)

	names, err := readBracketFile(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"North Carolina", "duke", "Saint Marys", "houston"}, names)
}

// TestReadBracketFile_SkipsCommentsAndBlanks tests comment and blank line handling
func TestReadBracketFile_SkipsCommentsAndBlanks(t *testing.T) {
	path := writeBracket(t, "# east region\ngonzaga\n\n  \nvillanova\n# west region\nduke\nhouston\n")

	names, err := readBracketFile(path)

	assert.NoError(t, err)
	assert.Equal(t, []string{"gonzaga", "villanova", "duke", "houston"}, names)
}

// TestReadBracketFile_MissingFile tests the error path for a path that does not exist
func TestReadBracketFile_MissingFile(t *testing.T) {
	_, err := readBracketFile(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Error(t, err)
}
